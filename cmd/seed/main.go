// Command seed populates a fresh database with the opening chapters of the
// story and an admin account, so a dev environment has something to read.
package main

import (
	"context"

	"github.com/robinjoseph08/golib/logger"
	"github.com/storyknot/storyknot/pkg/auth"
	"github.com/storyknot/storyknot/pkg/chapters"
	"github.com/storyknot/storyknot/pkg/config"
	"github.com/storyknot/storyknot/pkg/database"
	"github.com/storyknot/storyknot/pkg/migrations"
	"github.com/storyknot/storyknot/pkg/models"
	"github.com/storyknot/storyknot/pkg/pages"
	"github.com/storyknot/storyknot/pkg/sections"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	defer db.Close()

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		log.Err(err).Fatal("migrations error")
	}

	authService := auth.NewService(db, cfg.JWTSecret)
	chapterService := chapters.NewService(db)
	sectionService := sections.NewService(db)
	pageService := pages.NewService(db)

	admin, err := authService.CreateUser(ctx, "admin", "admin123", models.RoleAdmin)
	if err != nil {
		log.Err(err).Fatal("failed to create admin user")
	}
	log.Info("created admin user", logger.Data{"username": admin.Username})

	type pageSeed struct {
		pageNumber int
		content    string
	}
	type sectionSeed struct {
		title     string
		mood      string
		tags      []string
		sortOrder int
		pages     []pageSeed
	}
	type chapterSeed struct {
		title       string
		description string
		sortOrder   int
		sections    []sectionSeed
	}

	seeds := []chapterSeed{
		{
			title:       "Spring Destiny",
			description: "The beginning of our story under the cherry blossoms",
			sortOrder:   1,
			sections: []sectionSeed{
				{
					title:     "Under the Cherry Blossoms",
					mood:      "Romantic",
					tags:      []string{"spring", "first-meeting", "destiny"},
					sortOrder: 1,
					pages: []pageSeed{
						{1, `Seoul in the spring is a different world. The cherry blossoms paint the city in soft pinks and whites, and everywhere you look, there's a promise of new beginnings.

I didn't expect to meet you that day. The forecast said rain, but I went out anyway, drawn by the last day of cherry blossom season at Yeouido Park.

The petals were falling like snow, and I was trying to capture the perfect photo when my camera slipped from my hands. Before it could hit the ground, you caught it.

"Careful," you said, smiling. "These moments are too precious to drop."

That's when I first saw your eyes – warm, kind, and somehow familiar, as if I'd known them in another lifetime.

They say there's a red thread connecting those who are destined to meet. In that moment, under the falling petals, I felt it pull tight between us.`},
						{2, `"Thank you," I managed to say, my heart beating faster than it should from a simple act of kindness.

"I'm here doing the same thing," you said, showing me your own camera. "Trying to hold onto spring before it's gone."

We walked together that afternoon, comparing photos, talking about nothing and everything. You told me about your work as a photographer, how you chase light and moments. I told you about my writing, how I try to capture feelings in words.

When the rain finally came, we stood under a single umbrella, watching the last petals wash away down the street.

"I feel like I've been waiting to meet you," you said quietly.

"Me too," I whispered back, and I meant it with every fiber of my being.

That was the beginning. Our red thread had found its match.`},
					},
				},
				{
					title:     "The Coffee Shop Promise",
					mood:      "Hopeful",
					tags:      []string{"cafe", "promise", "beginning"},
					sortOrder: 2,
					pages: []pageSeed{
						{1, `The café became our place. Every Sunday at 2 PM, without fail, we'd meet at the corner table by the window.

"Same order?" the barista would ask, already knowing the answer. Two americanos, one croissant to share.

You'd show me the photos from your week – street scenes, landscapes, faces that told stories. I'd read you passages from whatever I was working on, watching your reactions to gauge if the words landed right.

"You capture time," I told you once. "I capture feelings."

"Maybe together we capture life," you said, and that's when you made the promise.`},
						{2, `"Let's make a promise," you said, pulling out your camera. "Every important moment, we document it. Your words, my photos. We'll create our own archive of this love."

Love. That was the first time either of us had said it out loud.

"Yes," I agreed, feeling the red thread between us pull tighter, more visible, more real.

You took a photo of us in the café window, the spring light filtering through, our reflections overlapping with the Seoul street behind us.

"The first entry in our archive," you said, and kissed my forehead.

I wrote three words in my notebook: "Spring. Destiny. Forever."

The promise was made. The thread was tied. And our story continued to unfold, one moment at a time.`},
					},
				},
			},
		},
		{
			title:       "Summer Adventures",
			description: "Exploring the city together in the golden summer light",
			sortOrder:   2,
			sections: []sectionSeed{
				{
					title:     "Han River Nights",
					mood:      "Peaceful",
					tags:      []string{"summer", "han-river", "memories"},
					sortOrder: 1,
					pages: []pageSeed{
						{1, `Summer in Seoul brought a different kind of magic. The humid air carried the sounds of cicadas and laughter from the Han River parks.

Every Friday night, we'd ride our bikes along the river path, watching the city lights reflect on the water. You'd bring your camera, always ready to capture the golden hour.

"Look," you'd say, pointing at the way the sunset painted the bridges. "This is why I love photography. How it freezes these fleeting moments."

We'd stop at the convenience store, buying cold drinks and kimbap, finding our spot on the grass. Other couples surrounded us, but in those moments, we had our own universe.

The red thread that connected us seemed to glow brighter in the summer twilight.`},
					},
				},
			},
		},
	}

	for _, cs := range seeds {
		description := cs.description
		chapter := &models.Chapter{
			Title:       cs.title,
			Description: &description,
			SortOrder:   cs.sortOrder,
		}
		if err := chapterService.CreateChapter(ctx, chapter); err != nil {
			log.Err(err).Fatal("failed to create chapter")
		}

		for _, ss := range cs.sections {
			mood := ss.mood
			section := &models.Section{
				ChapterID: chapter.ID,
				Title:     ss.title,
				Mood:      &mood,
				Tags:      ss.tags,
				SortOrder: ss.sortOrder,
			}
			if err := sectionService.CreateSection(ctx, section); err != nil {
				log.Err(err).Fatal("failed to create section")
			}

			for _, ps := range ss.pages {
				page := &models.Page{
					SectionID:  section.ID,
					Content:    ps.content,
					PageNumber: ps.pageNumber,
				}
				if err := pageService.CreatePage(ctx, page); err != nil {
					log.Err(err).Fatal("failed to create page")
				}
			}
		}
		log.Info("created chapter", logger.Data{"title": chapter.Title, "sections": len(cs.sections)})
	}

	log.Info("database seeded")
}

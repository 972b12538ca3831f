// Package embeds resolves embed markers inside page content. Page text can
// carry markers of the form [embed:<url>]; everything around them is prose.
package embeds

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

const (
	SegmentTypeProse     = "prose"
	SegmentTypeImage     = "image"
	SegmentTypeInstagram = "instagram"
	SegmentTypeEmbed     = "embed"
)

// Segment is one renderable piece of a page: either a run of prose or a
// resolved embed.
type Segment struct {
	Type string `json:"type"`
	// Text is set for prose segments.
	Text string `json:"text,omitempty"`
	// URL is set for embed segments.
	URL string `json:"url,omitempty"`
}

var markerRegexp = regexp.MustCompile(`\[embed:([^\]\s]+)\]`)

var imageExtensions = map[string]bool{
	".gif":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// Parse splits content into ordered segments. Markers whose URL doesn't
// parse, or that aren't http(s), are left in the prose untouched rather
// than dropped, so broken markup stays visible to editors.
func Parse(content string) []Segment {
	segments := []Segment{}
	var prose strings.Builder
	rest := content

	flush := func() {
		if text := strings.TrimSpace(prose.String()); text != "" {
			segments = append(segments, Segment{Type: SegmentTypeProse, Text: text})
		}
		prose.Reset()
	}

	for {
		loc := markerRegexp.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}

		rawURL := rest[loc[2]:loc[3]]
		kind, ok := classify(rawURL)
		if !ok {
			// Invalid marker: fold it into the surrounding prose.
			prose.WriteString(rest[:loc[1]])
			rest = rest[loc[1]:]
			continue
		}

		prose.WriteString(rest[:loc[0]])
		flush()
		segments = append(segments, Segment{Type: kind, URL: rawURL})
		rest = rest[loc[1]:]
	}

	prose.WriteString(rest)
	flush()

	return segments
}

func classify(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	if host == "instagram.com" || strings.HasSuffix(host, ".instagram.com") {
		return SegmentTypeInstagram, true
	}
	if imageExtensions[strings.ToLower(path.Ext(u.Path))] {
		return SegmentTypeImage, true
	}
	return SegmentTypeEmbed, true
}

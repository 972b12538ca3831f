package embeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("plain prose", func(t *testing.T) {
		t.Parallel()

		segments := Parse("The petals drifted down over the schoolyard.")
		assert.Equal(t, []Segment{
			{Type: SegmentTypeProse, Text: "The petals drifted down over the schoolyard."},
		}, segments)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, Parse(""))
		assert.Empty(t, Parse("   \n  "))
	})

	t.Run("prose around an embed", func(t *testing.T) {
		t.Parallel()

		segments := Parse("Before.\n[embed:https://example.com/clip]\nAfter.")
		assert.Equal(t, []Segment{
			{Type: SegmentTypeProse, Text: "Before."},
			{Type: SegmentTypeEmbed, URL: "https://example.com/clip"},
			{Type: SegmentTypeProse, Text: "After."},
		}, segments)
	})

	t.Run("instagram urls get their own type", func(t *testing.T) {
		t.Parallel()

		segments := Parse("[embed:https://www.instagram.com/p/abc123/]")
		assert.Equal(t, []Segment{
			{Type: SegmentTypeInstagram, URL: "https://www.instagram.com/p/abc123/"},
		}, segments)
	})

	t.Run("image urls get their own type", func(t *testing.T) {
		t.Parallel()

		segments := Parse("[embed:https://cdn.example.com/sakura.jpg]")
		assert.Equal(t, []Segment{
			{Type: SegmentTypeImage, URL: "https://cdn.example.com/sakura.jpg"},
		}, segments)

		segments = Parse("[embed:https://cdn.example.com/sakura.PNG]")
		assert.Equal(t, SegmentTypeImage, segments[0].Type)
	})

	t.Run("consecutive embeds", func(t *testing.T) {
		t.Parallel()

		segments := Parse("[embed:https://a.example.com/x][embed:https://b.example.com/y]")
		assert.Len(t, segments, 2)
		assert.Equal(t, "https://a.example.com/x", segments[0].URL)
		assert.Equal(t, "https://b.example.com/y", segments[1].URL)
	})

	t.Run("invalid marker stays in prose", func(t *testing.T) {
		t.Parallel()

		segments := Parse("Look: [embed:not-a-url] there.")
		assert.Equal(t, []Segment{
			{Type: SegmentTypeProse, Text: "Look: [embed:not-a-url] there."},
		}, segments)
	})

	t.Run("non-http scheme stays in prose", func(t *testing.T) {
		t.Parallel()

		segments := Parse("[embed:ftp://example.com/file]")
		assert.Equal(t, []Segment{
			{Type: SegmentTypeProse, Text: "[embed:ftp://example.com/file]"},
		}, segments)
	})
}

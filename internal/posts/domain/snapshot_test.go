package domain_test

import (
	"testing"
	"time"

	"github.com/philly/spacetraveling/internal/posts/domain"
	"github.com/stretchr/testify/assert"
)

func TestSnapshot_IsStale(t *testing.T) {
	generated := time.Date(2021, 3, 15, 12, 0, 0, 0, time.UTC)
	snap := domain.Snapshot{Slug: "hello", GeneratedAt: generated}

	assert.False(t, snap.IsStale(generated.Add(29*time.Minute), 30*time.Minute))
	assert.False(t, snap.IsStale(generated.Add(30*time.Minute), 30*time.Minute))
	assert.True(t, snap.IsStale(generated.Add(31*time.Minute), 30*time.Minute))
	assert.False(t, snap.IsStale(generated.Add(24*time.Hour), 0))
	assert.Equal(t, 45*time.Minute, snap.Age(generated.Add(45*time.Minute)))
}

func TestNewPostPage(t *testing.T) {
	view := domain.PostView{
		Post: domain.Post{
			UID: "hello",
			Data: domain.PostData{
				Title: "Hello",
				Content: []domain.ContentSection{
					{Heading: strPtr("Intro"), Body: []domain.RichTextBlock{{Text: words(399)}}},
				},
			},
		},
	}

	page := domain.NewPostPage(view, true)

	assert.Equal(t, 2, page.ReadingMinutes)
	assert.True(t, page.Preview)
	assert.Equal(t, "hello", page.Post.UID)
}

func TestPost_Summary(t *testing.T) {
	published := time.Date(2021, 3, 15, 19, 25, 28, 0, time.UTC)
	post := domain.Post{
		UID:                  "hello",
		FirstPublicationDate: &published,
		Data: domain.PostData{
			Title:    "Hello",
			Subtitle: "World",
			Author:   "Joseph Oliveira",
			Content:  []domain.ContentSection{{Heading: strPtr("ignored")}},
		},
	}

	assert.Equal(t, domain.PostSummary{
		UID:                  "hello",
		FirstPublicationDate: &published,
		Title:                "Hello",
		Subtitle:             "World",
		Author:               "Joseph Oliveira",
	}, post.Summary())
}

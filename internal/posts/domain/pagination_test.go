package domain_test

import (
	"testing"

	"github.com/philly/spacetraveling/internal/posts/domain"
	"github.com/stretchr/testify/assert"
)

func summaries(uids ...string) []domain.PostSummary {
	out := make([]domain.PostSummary, 0, len(uids))
	for _, uid := range uids {
		out = append(out, domain.PostSummary{UID: uid, Title: "Title " + uid})
	}
	return out
}

func uidsOf(items []domain.PostSummary) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.UID)
	}
	return out
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name       string
		current    domain.Page[domain.PostSummary]
		incoming   domain.Page[domain.PostSummary]
		wantUIDs   []string
		wantCursor string
	}{
		{
			name:       "appends incoming after current and adopts its cursor",
			current:    domain.Page[domain.PostSummary]{NextCursor: "page-2", Results: summaries("a", "b")},
			incoming:   domain.Page[domain.PostSummary]{NextCursor: "page-3", Results: summaries("c")},
			wantUIDs:   []string{"a", "b", "c"},
			wantCursor: "page-3",
		},
		{
			name:       "absent incoming cursor ends pagination",
			current:    domain.Page[domain.PostSummary]{NextCursor: "page-2", Results: summaries("a")},
			incoming:   domain.Page[domain.PostSummary]{Results: summaries("b")},
			wantUIDs:   []string{"a", "b"},
			wantCursor: "",
		},
		{
			name:       "duplicates are kept",
			current:    domain.Page[domain.PostSummary]{NextCursor: "page-2", Results: summaries("a", "b")},
			incoming:   domain.Page[domain.PostSummary]{NextCursor: "page-3", Results: summaries("b")},
			wantUIDs:   []string{"a", "b", "b"},
			wantCursor: "page-3",
		},
		{
			name:       "empty incoming page still moves the cursor",
			current:    domain.Page[domain.PostSummary]{NextCursor: "page-2", Results: summaries("a")},
			incoming:   domain.Page[domain.PostSummary]{NextCursor: "page-3"},
			wantUIDs:   []string{"a"},
			wantCursor: "page-3",
		},
		{
			name:       "empty current",
			current:    domain.Page[domain.PostSummary]{NextCursor: "page-1"},
			incoming:   domain.Page[domain.PostSummary]{Results: summaries("a")},
			wantUIDs:   []string{"a"},
			wantCursor: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := domain.Merge(tt.current, tt.incoming)

			assert.Equal(t, tt.wantUIDs, uidsOf(merged.Results))
			assert.Len(t, merged.Results, len(tt.current.Results)+len(tt.incoming.Results))
			assert.Equal(t, tt.incoming.NextCursor, merged.NextCursor)
			assert.Equal(t, tt.wantCursor, merged.NextCursor)
			assert.Equal(t, tt.wantCursor != "", merged.HasNext())
		})
	}
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	backing := make([]domain.PostSummary, 2, 8)
	copy(backing, summaries("a", "b"))
	current := domain.Page[domain.PostSummary]{NextCursor: "page-2", Results: backing}
	incoming := domain.Page[domain.PostSummary]{NextCursor: "page-3", Results: summaries("c")}

	merged := domain.Merge(current, incoming)
	merged.Results[0].Title = "changed"
	merged = domain.Merge(merged, domain.Page[domain.PostSummary]{Results: summaries("d")})

	assert.Equal(t, "page-2", current.NextCursor)
	assert.Equal(t, []string{"a", "b"}, uidsOf(current.Results))
	assert.Equal(t, "Title a", current.Results[0].Title)
	assert.Equal(t, domain.PostSummary{}, backing[:3][2], "spare capacity of current must stay untouched")
	assert.Equal(t, []string{"c"}, uidsOf(incoming.Results))
	assert.Equal(t, []string{"a", "b", "c", "d"}, uidsOf(merged.Results))
}

func TestMerge_WorksForFullPosts(t *testing.T) {
	current := domain.Page[domain.Post]{NextCursor: "next", Results: []domain.Post{{UID: "first"}}}
	incoming := domain.Page[domain.Post]{Results: []domain.Post{{UID: "second"}}}

	merged := domain.Merge(current, incoming)

	assert.Equal(t, "first", merged.Results[0].UID)
	assert.Equal(t, "second", merged.Results[1].UID)
	assert.False(t, merged.HasNext())
}

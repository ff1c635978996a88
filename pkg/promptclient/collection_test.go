package promptclient_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"promptvault-backend-go/internal/models"
	"promptvault-backend-go/pkg/promptclient"
)

var collectionBase = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func makePrompt(id, title string, age time.Duration, tags ...string) models.Prompt {
	ts := collectionBase.Add(-age)
	return models.Prompt{
		ID:        id,
		UserID:    "user-1",
		Title:     title,
		Content:   "content of " + title,
		Tags:      tags,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func ids(prompts []models.Prompt) []string {
	out := make([]string, len(prompts))
	for i := range prompts {
		out[i] = prompts[i].ID
	}
	return out
}

func TestInsertFrontKeepsNewestFirst(t *testing.T) {
	col := promptclient.NewCollection()
	col.Replace([]models.Prompt{
		makePrompt("b", "second", time.Hour),
		makePrompt("c", "third", 2*time.Hour),
	})

	col.InsertFront(makePrompt("a", "newest", 0))
	require.Equal(t, []string{"a", "b", "c"}, ids(col.All()))
}

func TestReplaceByIDMovesUpdatedRowToFront(t *testing.T) {
	col := promptclient.NewCollection()
	col.Replace([]models.Prompt{
		makePrompt("a", "first", time.Hour),
		makePrompt("b", "second", 2*time.Hour),
		makePrompt("c", "third", 3*time.Hour),
	})

	updated := makePrompt("c", "third, edited", 0)
	require.True(t, col.ReplaceByID(updated))
	require.Equal(t, []string{"c", "a", "b"}, ids(col.All()))

	got, ok := col.Get("c")
	require.True(t, ok)
	require.Equal(t, "third, edited", got.Title)
}

func TestReplaceByIDRefusesUnknownRow(t *testing.T) {
	col := promptclient.NewCollection()
	col.Replace([]models.Prompt{makePrompt("a", "only", time.Hour)})

	require.False(t, col.ReplaceByID(makePrompt("ghost", "gone", 0)))
	require.Equal(t, []string{"a"}, ids(col.All()))
}

func TestRemoveByIDIsIdempotent(t *testing.T) {
	col := promptclient.NewCollection()
	col.Replace([]models.Prompt{
		makePrompt("a", "first", time.Hour),
		makePrompt("b", "second", 2*time.Hour),
	})

	require.True(t, col.RemoveByID("a"))
	require.False(t, col.RemoveByID("a"))
	require.Equal(t, []string{"b"}, ids(col.All()))
}

func TestSearchMatchesTitleContentAndTags(t *testing.T) {
	col := promptclient.NewCollection()
	col.Replace([]models.Prompt{
		makePrompt("a", "Email Drafting", time.Hour, "writing"),
		makePrompt("b", "Code Review", 2*time.Hour, "golang", "review"),
		makePrompt("c", "Meeting Notes", 3*time.Hour),
	})

	require.Equal(t, []string{"a"}, ids(col.Search("email")))
	require.Equal(t, []string{"b"}, ids(col.Search("GOLANG")))
	require.Equal(t, []string{"c"}, ids(col.Search("content of Meeting")))
	require.Empty(t, col.Search("nonexistent"))
}

func TestSearchEmptyQueryReturnsEverythingInOrder(t *testing.T) {
	col := promptclient.NewCollection()
	col.Replace([]models.Prompt{
		makePrompt("a", "first", time.Hour),
		makePrompt("b", "second", 2*time.Hour),
	})

	require.Equal(t, []string{"a", "b"}, ids(col.Search("")))
	require.Equal(t, []string{"a", "b"}, ids(col.Search("   ")))
}

func TestSearchNeverMutatesTheCollection(t *testing.T) {
	col := promptclient.NewCollection()
	col.Replace([]models.Prompt{
		makePrompt("a", "first", time.Hour, "x"),
		makePrompt("b", "second", 2*time.Hour),
	})
	before := col.All()

	col.Search("first")
	col.Search("no match at all")

	require.Equal(t, before, col.All())
}

func TestComputeStats(t *testing.T) {
	col := promptclient.NewCollection()
	col.Replace([]models.Prompt{
		makePrompt("a", "recent", 24*time.Hour, "go", "api"),
		makePrompt("b", "this week", 6*24*time.Hour, "go"),
		makePrompt("c", "old", 30*24*time.Hour, "legacy"),
	})

	stats := col.ComputeStats(collectionBase)
	require.Equal(t, 3, stats.TotalPrompts)
	require.Equal(t, 2, stats.CreatedThisWeek)
	require.Equal(t, 3, stats.DistinctTagCount)
}

func TestRelativeAge(t *testing.T) {
	now := collectionBase
	require.Equal(t, "just now", promptclient.RelativeAge(now.Add(-30*time.Second), now))
	require.Equal(t, "5m ago", promptclient.RelativeAge(now.Add(-5*time.Minute), now))
	require.Equal(t, "3h ago", promptclient.RelativeAge(now.Add(-3*time.Hour), now))
	require.Equal(t, "2d ago", promptclient.RelativeAge(now.Add(-48*time.Hour), now))
	require.Equal(t, "Aug 1, 2026", promptclient.RelativeAge(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), now))
}

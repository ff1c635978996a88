package core_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"promptvault-backend-go/internal/core"
	"promptvault-backend-go/internal/db"
	"promptvault-backend-go/internal/models"
)

// fakePromptRepo is an in-memory db.PromptRepository with the same
// read-back and timestamp semantics as the Firestore implementation.
type fakePromptRepo struct {
	prompts map[string]models.Prompt
	nextID  int
	now     time.Time
}

func newFakePromptRepo() *fakePromptRepo {
	return &fakePromptRepo{
		prompts: make(map[string]models.Prompt),
		now:     time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakePromptRepo) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakePromptRepo) Create(_ context.Context, prompt *models.Prompt) (*models.Prompt, error) {
	f.nextID++
	stored := *prompt
	stored.ID = fmt.Sprintf("prompt-%d", f.nextID)
	ts := f.tick()
	stored.CreatedAt = ts
	stored.UpdatedAt = ts
	f.prompts[stored.ID] = stored
	out := stored
	return &out, nil
}

func (f *fakePromptRepo) GetByID(_ context.Context, promptID string) (*models.Prompt, error) {
	stored, ok := f.prompts[promptID]
	if !ok {
		return nil, db.ErrNotFound
	}
	out := stored
	return &out, nil
}

func (f *fakePromptRepo) ListByUserID(_ context.Context, userID string) ([]*models.Prompt, error) {
	var out []*models.Prompt
	for id := range f.prompts {
		if f.prompts[id].UserID == userID {
			p := f.prompts[id]
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].UpdatedAt.After(out[b].UpdatedAt) })
	return out, nil
}

func (f *fakePromptRepo) Update(_ context.Context, prompt *models.Prompt) (*models.Prompt, error) {
	if _, ok := f.prompts[prompt.ID]; !ok {
		return nil, db.ErrNotFound
	}
	stored := *prompt
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = f.tick()
	}
	f.prompts[stored.ID] = stored
	out := stored
	return &out, nil
}

func (f *fakePromptRepo) Delete(_ context.Context, promptID string) error {
	delete(f.prompts, promptID)
	return nil
}

func newPromptService(t *testing.T) (core.PromptService, *fakePromptRepo) {
	t.Helper()
	repo := newFakePromptRepo()
	svc, err := core.NewPromptService(repo)
	require.NoError(t, err)
	return svc, repo
}

func strPtr(s string) *string { return &s }

func TestCreatePromptReturnsStoredRow(t *testing.T) {
	svc, _ := newPromptService(t)

	created, err := svc.CreatePrompt(context.Background(), "user-1", models.CreatePromptRequest{
		Title:   "Summarizer",
		Content: "Summarize the following text",
		Tags:    []string{"writing", "summary"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "user-1", created.UserID)
	require.Equal(t, []string{"writing", "summary"}, created.Tags)
	require.False(t, created.CreatedAt.IsZero())
	require.False(t, created.UpdatedAt.IsZero())
}

func TestCreatePromptDefaultsNilTags(t *testing.T) {
	svc, _ := newPromptService(t)

	created, err := svc.CreatePrompt(context.Background(), "user-1", models.CreatePromptRequest{
		Title:   "No tags",
		Content: "content",
	})
	require.NoError(t, err)
	require.NotNil(t, created.Tags)
	require.Empty(t, created.Tags)
}

func TestGetPromptOfAnotherUserIsNotFound(t *testing.T) {
	svc, _ := newPromptService(t)

	created, err := svc.CreatePrompt(context.Background(), "owner", models.CreatePromptRequest{
		Title: "t", Content: "c",
	})
	require.NoError(t, err)

	_, err = svc.GetPromptByID(context.Background(), "intruder", created.ID)
	require.ErrorIs(t, err, core.ErrPromptNotFound)

	// Same error as a genuinely absent row, so ownership is not observable.
	_, absentErr := svc.GetPromptByID(context.Background(), "intruder", "no-such-id")
	require.ErrorIs(t, absentErr, core.ErrPromptNotFound)
}

func TestListPromptsIsScopedAndOrdered(t *testing.T) {
	svc, _ := newPromptService(t)
	ctx := context.Background()

	first, err := svc.CreatePrompt(ctx, "user-1", models.CreatePromptRequest{Title: "first", Content: "c"})
	require.NoError(t, err)
	second, err := svc.CreatePrompt(ctx, "user-1", models.CreatePromptRequest{Title: "second", Content: "c"})
	require.NoError(t, err)
	_, err = svc.CreatePrompt(ctx, "user-2", models.CreatePromptRequest{Title: "other", Content: "c"})
	require.NoError(t, err)

	prompts, err := svc.ListPrompts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, prompts, 2)
	require.Equal(t, second.ID, prompts[0].ID)
	require.Equal(t, first.ID, prompts[1].ID)
}

func TestUpdatePromptAppliesPartialPatch(t *testing.T) {
	svc, _ := newPromptService(t)
	ctx := context.Background()

	created, err := svc.CreatePrompt(ctx, "user-1", models.CreatePromptRequest{
		Title:   "old title",
		Content: "old content",
		Tags:    []string{"a"},
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePrompt(ctx, "user-1", created.ID, models.UpdatePromptRequest{
		Title: strPtr("new title"),
	})
	require.NoError(t, err)
	require.Equal(t, "new title", updated.Title)
	require.Equal(t, "old content", updated.Content)
	require.Equal(t, []string{"a"}, updated.Tags)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdatePromptCanClearTags(t *testing.T) {
	svc, _ := newPromptService(t)
	ctx := context.Background()

	created, err := svc.CreatePrompt(ctx, "user-1", models.CreatePromptRequest{
		Title: "t", Content: "c", Tags: []string{"a", "b"},
	})
	require.NoError(t, err)

	empty := []string{}
	updated, err := svc.UpdatePrompt(ctx, "user-1", created.ID, models.UpdatePromptRequest{Tags: &empty})
	require.NoError(t, err)
	require.Empty(t, updated.Tags)
}

func TestUpdatePromptOfAnotherUserLeavesRowUntouched(t *testing.T) {
	svc, repo := newPromptService(t)
	ctx := context.Background()

	created, err := svc.CreatePrompt(ctx, "owner", models.CreatePromptRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.UpdatePrompt(ctx, "intruder", created.ID, models.UpdatePromptRequest{Title: strPtr("hacked")})
	require.ErrorIs(t, err, core.ErrPromptNotFound)

	stored := repo.prompts[created.ID]
	require.Equal(t, "t", stored.Title)
}

func TestUpdateAbsentPromptIsNotFound(t *testing.T) {
	svc, _ := newPromptService(t)

	_, err := svc.UpdatePrompt(context.Background(), "user-1", "gone", models.UpdatePromptRequest{Title: strPtr("x")})
	require.ErrorIs(t, err, core.ErrPromptNotFound)
}

func TestDeletePromptTwice(t *testing.T) {
	svc, _ := newPromptService(t)
	ctx := context.Background()

	created, err := svc.CreatePrompt(ctx, "user-1", models.CreatePromptRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePrompt(ctx, "user-1", created.ID))
	err = svc.DeletePrompt(ctx, "user-1", created.ID)
	require.ErrorIs(t, err, core.ErrPromptNotFound)
}

func TestDeletePromptOfAnotherUser(t *testing.T) {
	svc, repo := newPromptService(t)
	ctx := context.Background()

	created, err := svc.CreatePrompt(ctx, "owner", models.CreatePromptRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	err = svc.DeletePrompt(ctx, "intruder", created.ID)
	require.ErrorIs(t, err, core.ErrPromptNotFound)
	require.Contains(t, repo.prompts, created.ID)
}

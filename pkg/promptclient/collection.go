package promptclient

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"promptvault-backend-go/internal/models"
)

// Collection is the client-side working copy of a user's prompts. It mirrors
// the server's ordering (updatedAt descending) and is what the mutation
// methods on Client reconcile against: created rows are inserted at the
// front, updated rows replace their predecessor in place, deleted rows are
// filtered out. A failed mutation never touches it.
type Collection struct {
	mu      sync.RWMutex
	prompts []models.Prompt
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Replace swaps the whole collection for the given rows, e.g. after a full
// reload from the server. The rows are assumed to already be in server order.
func (col *Collection) Replace(prompts []models.Prompt) {
	col.mu.Lock()
	defer col.mu.Unlock()
	col.prompts = make([]models.Prompt, len(prompts))
	copy(col.prompts, prompts)
}

// InsertFront places a freshly created prompt at the head of the collection.
// A brand-new row carries the newest updatedAt, so the front slot keeps the
// ordering invariant without a re-sort.
func (col *Collection) InsertFront(prompt models.Prompt) {
	col.mu.Lock()
	defer col.mu.Unlock()
	col.prompts = append([]models.Prompt{prompt}, col.prompts...)
}

// ReplaceByID substitutes the stored row with the same ID and re-sorts by
// updatedAt descending, since the updated row's new timestamp moves it to
// the front. Returns false when no row with that ID exists.
func (col *Collection) ReplaceByID(prompt models.Prompt) bool {
	col.mu.Lock()
	defer col.mu.Unlock()
	for i := range col.prompts {
		if col.prompts[i].ID == prompt.ID {
			col.prompts[i] = prompt
			sort.SliceStable(col.prompts, func(a, b int) bool {
				return col.prompts[a].UpdatedAt.After(col.prompts[b].UpdatedAt)
			})
			return true
		}
	}
	return false
}

// RemoveByID filters the row with the given ID out of the collection.
// Removing an ID that is not present is a no-op, so a delete can be
// reconciled more than once without harm.
func (col *Collection) RemoveByID(promptID string) bool {
	col.mu.Lock()
	defer col.mu.Unlock()
	for i := range col.prompts {
		if col.prompts[i].ID == promptID {
			col.prompts = append(col.prompts[:i], col.prompts[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether a row with the given ID is currently held.
func (col *Collection) Contains(promptID string) bool {
	col.mu.RLock()
	defer col.mu.RUnlock()
	for i := range col.prompts {
		if col.prompts[i].ID == promptID {
			return true
		}
	}
	return false
}

// Get returns a copy of the row with the given ID.
func (col *Collection) Get(promptID string) (models.Prompt, bool) {
	col.mu.RLock()
	defer col.mu.RUnlock()
	for i := range col.prompts {
		if col.prompts[i].ID == promptID {
			return col.prompts[i], true
		}
	}
	return models.Prompt{}, false
}

// All returns a copy of the collection in its current order.
func (col *Collection) All() []models.Prompt {
	col.mu.RLock()
	defer col.mu.RUnlock()
	out := make([]models.Prompt, len(col.prompts))
	copy(out, col.prompts)
	return out
}

// Len returns the number of prompts held.
func (col *Collection) Len() int {
	col.mu.RLock()
	defer col.mu.RUnlock()
	return len(col.prompts)
}

// Search returns the prompts whose title, content or any tag contains the
// query, case-insensitively, preserving collection order. An empty or
// whitespace-only query returns everything. Search never mutates the
// collection and issues no network calls.
func (col *Collection) Search(query string) []models.Prompt {
	col.mu.RLock()
	defer col.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]models.Prompt, len(col.prompts))
		copy(out, col.prompts)
		return out
	}

	matched := make([]models.Prompt, 0, len(col.prompts))
	for i := range col.prompts {
		if promptMatches(&col.prompts[i], q) {
			matched = append(matched, col.prompts[i])
		}
	}
	return matched
}

func promptMatches(p *models.Prompt, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(p.Title), loweredQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Content), loweredQuery) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), loweredQuery) {
			return true
		}
	}
	return false
}

// Stats summarizes the collection for dashboard display.
type Stats struct {
	TotalPrompts     int `json:"total_prompts"`
	CreatedThisWeek  int `json:"created_this_week"`
	DistinctTagCount int `json:"distinct_tag_count"`
}

// ComputeStats derives totals from the collection as of `now`: overall count,
// rows created within the last seven days, and the number of distinct tags
// (compared case-sensitively, as the server stores them).
func (col *Collection) ComputeStats(now time.Time) Stats {
	col.mu.RLock()
	defer col.mu.RUnlock()

	weekAgo := now.AddDate(0, 0, -7)
	tags := make(map[string]struct{})
	createdThisWeek := 0
	for i := range col.prompts {
		if col.prompts[i].CreatedAt.After(weekAgo) {
			createdThisWeek++
		}
		for _, tag := range col.prompts[i].Tags {
			tags[tag] = struct{}{}
		}
	}

	return Stats{
		TotalPrompts:     len(col.prompts),
		CreatedThisWeek:  createdThisWeek,
		DistinctTagCount: len(tags),
	}
}

// RelativeAge renders how long ago `t` was relative to `now` in a compact
// human form: "just now", "5m ago", "3h ago", "2d ago", then the date.
func RelativeAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

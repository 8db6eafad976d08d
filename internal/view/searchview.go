// Package view holds the per-session search state: the user's inputs,
// the theme flag and the outcome of the latest search.
package view

import (
	"context"
	"sync"
	"time"

	"github.com/windoze95/saltybytes-recipe-ideas/internal/logger"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/metrics"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/models"
	"go.uber.org/zap"
)

// CommitKey is the key that runs a search while the ingredient field has focus.
const CommitKey = "Enter"

// Searcher runs one lookup for the given criteria.
type Searcher interface {
	SearchRecipes(ctx context.Context, criteria models.SearchCriteria) models.SearchResultState
}

// Snapshot is a consistent copy of a SearchView's state.
type Snapshot struct {
	Criteria models.SearchCriteria
	Theme    models.Theme
	State    models.SearchResultState
	// Searched is false until the first search has resolved, which is what
	// separates Idle from a Success with no recipes.
	Searched bool
	// Version increases with every state change.
	Version uint64
}

// SearchView is the state container behind one search page.
type SearchView struct {
	searcher     Searcher
	discardStale bool

	mu         sync.Mutex
	criteria   models.SearchCriteria
	theme      models.Theme
	state      models.SearchResultState
	searched   bool
	seq        uint64
	version    uint64
	lastActive time.Time
	onChange   func(Snapshot)

	// notifyMu serializes OnChange calls; delivered is the last version passed.
	notifyMu  sync.Mutex
	delivered uint64
}

// New returns a SearchView with default inputs, the dark theme and Idle state.
// When discardStale is set, a response is dropped if another search was
// issued after it; otherwise the last response to resolve wins.
func New(searcher Searcher, discardStale bool) *SearchView {
	return &SearchView{
		searcher:     searcher,
		discardStale: discardStale,
		criteria:     models.NewSearchCriteria(),
		theme:        models.DefaultTheme(),
		state:        models.Idle(),
		lastActive:   time.Now(),
	}
}

// OnChange registers fn to be called with a snapshot after every state
// change. fn is called without the view's lock held, one call at a time and
// in version order. A snapshot superseded before its turn is skipped, since
// the newer one already carries its change.
func (v *SearchView) OnChange(fn func(Snapshot)) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// Snapshot returns the current state.
func (v *SearchView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// LastActive returns the time of the last mutation or search.
func (v *SearchView) LastActive() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastActive
}

// SetIngredient replaces the ingredient text. It is stored untrimmed.
func (v *SearchView) SetIngredient(text string) {
	v.update(func() { v.criteria.IngredientText = text })
}

// SetDiet replaces the diet filter. Results already shown are not re-filtered.
func (v *SearchView) SetDiet(diet models.DietFilter) {
	v.update(func() { v.criteria.Diet = diet })
}

// SetTime replaces the time filter. Results already shown are not re-filtered.
func (v *SearchView) SetTime(pace models.TimeFilter) {
	v.update(func() { v.criteria.Time = pace })
}

// ToggleTheme flips between the dark and light theme.
func (v *SearchView) ToggleTheme() {
	v.update(func() { v.theme = v.theme.Toggled() })
}

// HandleKey runs a search when key is CommitKey. It reports whether a
// search was issued.
func (v *SearchView) HandleKey(ctx context.Context, key string) bool {
	if key != CommitKey {
		return false
	}
	return v.Search(ctx)
}

// Search runs the current criteria through the Searcher, moving to Loading
// first. It blocks until the lookup resolves. With blank ingredient text it
// does nothing and returns false.
func (v *SearchView) Search(ctx context.Context) bool {
	v.mu.Lock()
	if v.criteria.IsBlank() {
		v.mu.Unlock()
		return false
	}
	criteria := v.criteria
	v.seq++
	token := v.seq
	v.state = models.Loading()
	v.lastActive = time.Now()
	v.version++
	snap, notify := v.snapshotLocked(), v.onChange
	v.mu.Unlock()

	v.deliver(notify, snap)

	result := v.searcher.SearchRecipes(ctx, criteria)

	v.mu.Lock()
	if v.discardStale && token != v.seq {
		latest := v.seq
		v.mu.Unlock()
		metrics.StaleResponseDiscarded()
		logger.Get().Debug("discarding stale search response",
			zap.Uint64("token", token),
			zap.Uint64("latest", latest),
			zap.String("ingredient", criteria.Ingredient()),
		)
		return true
	}
	v.state = result
	v.searched = true
	v.lastActive = time.Now()
	v.version++
	snap, notify = v.snapshotLocked(), v.onChange
	v.mu.Unlock()

	v.deliver(notify, snap)
	return true
}

func (v *SearchView) update(mutate func()) {
	v.mu.Lock()
	mutate()
	v.lastActive = time.Now()
	v.version++
	snap, notify := v.snapshotLocked(), v.onChange
	v.mu.Unlock()

	v.deliver(notify, snap)
}

// deliver passes snap to notify unless a newer snapshot was delivered first.
func (v *SearchView) deliver(notify func(Snapshot), snap Snapshot) {
	if notify == nil {
		return
	}
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()
	if snap.Version <= v.delivered {
		return
	}
	v.delivered = snap.Version
	notify(snap)
}

func (v *SearchView) snapshotLocked() Snapshot {
	state := v.state
	if state.Recipes != nil {
		recipes := make([]models.RecipeSummary, len(state.Recipes))
		copy(recipes, state.Recipes)
		state.Recipes = recipes
	}
	return Snapshot{
		Criteria: v.criteria,
		Theme:    v.theme,
		State:    state,
		Searched: v.searched,
		Version:  v.version,
	}
}

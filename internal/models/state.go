package models

// SearchStatus is the type for the SearchStatus enum.
type SearchStatus string

// SearchStatus enum values.
const (
	StatusIdle    SearchStatus = "idle"
	StatusLoading SearchStatus = "loading"
	StatusSuccess SearchStatus = "success"
	StatusFailure SearchStatus = "failure"
)

// User-facing failure messages.
const (
	NoResultsMessage     = "No recipes found. Try another ingredient."
	RequestFailedMessage = "Something went wrong. Please try again."
)

// SearchResultState is the outcome of the most recent search. Recipes is
// only meaningful for StatusSuccess and Message only for StatusFailure.
// Recipes is never nil so it always encodes as a JSON array.
type SearchResultState struct {
	Status  SearchStatus    `json:"status"`
	Recipes []RecipeSummary `json:"recipes"`
	Message string          `json:"message,omitempty"`
}

// Idle returns the state before any search has run.
func Idle() SearchResultState {
	return SearchResultState{Status: StatusIdle, Recipes: []RecipeSummary{}}
}

// Loading returns the state while a search is outstanding.
func Loading() SearchResultState {
	return SearchResultState{Status: StatusLoading, Recipes: []RecipeSummary{}}
}

// Success returns a state holding the given recipes. A nil slice is
// normalized to an empty one.
func Success(recipes []RecipeSummary) SearchResultState {
	if recipes == nil {
		recipes = []RecipeSummary{}
	}
	return SearchResultState{Status: StatusSuccess, Recipes: recipes}
}

// Failure returns a state carrying a user-facing message.
func Failure(message string) SearchResultState {
	return SearchResultState{Status: StatusFailure, Recipes: []RecipeSummary{}, Message: message}
}

// IsLoading reports whether a search is outstanding.
func (s SearchResultState) IsLoading() bool { return s.Status == StatusLoading }

// IsFailure reports whether the last search failed.
func (s SearchResultState) IsFailure() bool { return s.Status == StatusFailure }

// IsSuccess reports whether the last search returned a result list.
func (s SearchResultState) IsSuccess() bool { return s.Status == StatusSuccess }

// Theme is the cosmetic light/dark flag.
type Theme struct {
	Dark bool `json:"dark"`
}

// DefaultTheme returns the dark theme.
func DefaultTheme() Theme {
	return Theme{Dark: true}
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	return Theme{Dark: !t.Dark}
}

// ParseTheme converts a query value into a Theme. Anything other than
// "light" selects the dark default.
func ParseTheme(s string) Theme {
	return Theme{Dark: s != "light"}
}

// String returns the query value for the theme.
func (t Theme) String() string {
	if t.Dark {
		return "dark"
	}
	return "light"
}

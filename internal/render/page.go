// Package render maps a search session's state to what the page shows.
package render

import (
	"net/url"

	"github.com/windoze95/saltybytes-recipe-ideas/internal/config"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/models"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/view"
)

// Fixed page copy.
const (
	PageTitle          = "Smart Recipe Ideas"
	LoadingMessage     = "Loading recipes..."
	IngredientHint     = "Enter an ingredient (e.g. chicken, tomato)"
	ViewRecipeLinkText = "View Recipe"
	darkClass          = "dark"
	lightModeLabel     = "Light Mode"
	darkModeLabel      = "Dark Mode"
)

// Option is one entry of a select control.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Card is one rendered recipe.
type Card struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	ImageAlt string `json:"image_alt"`
	Link     string `json:"link"`
}

// Page is everything the page template and the live view need.
type Page struct {
	Title       string         `json:"title"`
	Ingredient  string         `json:"ingredient"`
	DietOptions []Option       `json:"diet_options"`
	TimeOptions []Option       `json:"time_options"`
	Dark        bool           `json:"dark"`
	BodyClass   string         `json:"body_class"`
	Palette     config.Palette `json:"palette"`
	ThemeLabel  string         `json:"theme_label"`
	ToggleColor string         `json:"toggle_color"`
	// ToggleHref reloads the page with the opposite theme and the same inputs.
	ToggleHref  string         `json:"toggle_href"`

	Status         models.SearchStatus `json:"status"`
	ShowLoading    bool                `json:"show_loading"`
	LoadingMessage string              `json:"loading_message,omitempty"`
	ShowError      bool                `json:"show_error"`
	Error          string              `json:"error,omitempty"`
	ShowResults    bool                `json:"show_results"`
	Cards          []Card              `json:"cards"`
}

// Build maps a snapshot to a Page. The theme only selects presentation
// values; it does not influence which results are shown.
func Build(snap view.Snapshot, palettes *config.Palettes) Page {
	if palettes == nil {
		palettes = config.DefaultPalettes()
	}
	palette := palettes.Select(snap.Theme.Dark)

	p := Page{
		Title:       PageTitle,
		Ingredient:  snap.Criteria.IngredientText,
		DietOptions: dietOptions(snap.Criteria.Diet),
		TimeOptions: timeOptions(snap.Criteria.Time),
		Dark:        snap.Theme.Dark,
		Palette:     palette,
		ToggleColor: palette.Toggle,
		ToggleHref:  toggleHref(snap),
		Status:      snap.State.Status,
		Cards:       []Card{},
	}

	if snap.Theme.Dark {
		p.BodyClass = darkClass
		p.ThemeLabel = lightModeLabel
	} else {
		p.ThemeLabel = darkModeLabel
	}

	switch snap.State.Status {
	case models.StatusLoading:
		p.ShowLoading = true
		p.LoadingMessage = LoadingMessage
	case models.StatusFailure:
		p.ShowError = true
		p.Error = snap.State.Message
	case models.StatusSuccess:
		p.ShowResults = true
		for _, r := range snap.State.Recipes {
			p.Cards = append(p.Cards, Card{
				ID:       r.ID,
				Title:    r.Title,
				ImageURL: r.ThumbnailURL,
				ImageAlt: r.Title,
				Link:     r.DetailURL,
			})
		}
	}

	return p
}

func dietOptions(selected models.DietFilter) []Option {
	return []Option{
		{Value: string(models.DietAll), Label: "All Diets", Selected: selected != models.DietVegetarian},
		{Value: string(models.DietVegetarian), Label: "Vegetarian", Selected: selected == models.DietVegetarian},
	}
}

func timeOptions(selected models.TimeFilter) []Option {
	return []Option{
		{Value: string(models.TimeAll), Label: "Any Time", Selected: selected != models.TimeQuick},
		{Value: string(models.TimeQuick), Label: "Quick Meals", Selected: selected == models.TimeQuick},
	}
}

func toggleHref(snap view.Snapshot) string {
	q := url.Values{}
	if !snap.Criteria.IsBlank() {
		q.Set("i", snap.Criteria.IngredientText)
	}
	q.Set("diet", string(models.ParseDietFilter(string(snap.Criteria.Diet))))
	q.Set("time", string(models.ParseTimeFilter(string(snap.Criteria.Time))))
	q.Set("theme", snap.Theme.Toggled().String())
	return "/?" + q.Encode()
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/config"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/models"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/render"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/service"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(src *testutil.MockMealSource) *gin.Engine {
	svc := service.NewSearchService(&config.Config{}, src)

	r := gin.New()
	r.SetHTMLTemplate(render.Templates())
	r.GET("/", NewPageHandler(svc, config.DefaultPalettes()).ShowPage)
	r.GET("/v1/recipes/search", NewSearchHandler(svc).SearchRecipes)
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) models.SearchResultState {
	t.Helper()
	var state models.SearchResultState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
	return state
}

func TestSearchRecipes_MissingIngredient(t *testing.T) {
	src := (&testutil.MockMealSource{}).Returning(testutil.TestMeals(1))
	r := setupRouter(src)

	w := get(r, "/v1/recipes/search?i=%20%20")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if len(src.Calls()) != 0 {
		t.Errorf("source called %d times, want 0", len(src.Calls()))
	}
}

func TestSearchRecipes_Vegetarian(t *testing.T) {
	src := (&testutil.MockMealSource{}).Returning(testutil.SoupAndChili())
	r := setupRouter(src)

	w := get(r, "/v1/recipes/search?i=beans&diet=vegetarian")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	state := decodeState(t, w)
	if state.Status != models.StatusSuccess || len(state.Recipes) != 1 || state.Recipes[0].ID != "2" {
		t.Errorf("state = %+v, want success with [2]", state)
	}
}

func TestSearchRecipes_Quick(t *testing.T) {
	src := (&testutil.MockMealSource{}).Returning(testutil.TestMeals(10))
	r := setupRouter(src)

	state := decodeState(t, get(r, "/v1/recipes/search?i=rice&time=quick"))

	if len(state.Recipes) != 6 {
		t.Errorf("len(Recipes) = %d, want 6", len(state.Recipes))
	}
}

func TestSearchRecipes_NoResults(t *testing.T) {
	src := (&testutil.MockMealSource{}).Returning(nil)
	r := setupRouter(src)

	w := get(r, "/v1/recipes/search?i=unobtainium")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	state := decodeState(t, w)
	if state.Status != models.StatusFailure || state.Message != models.NoResultsMessage {
		t.Errorf("state = %+v", state)
	}
	if !strings.Contains(w.Body.String(), `"recipes":[]`) {
		t.Errorf("body = %s, want an empty recipes array", w.Body.String())
	}
}

func TestSearchRecipes_SourceFault(t *testing.T) {
	src := (&testutil.MockMealSource{}).Failing(errors.New("connection reset"))
	r := setupRouter(src)

	state := decodeState(t, get(r, "/v1/recipes/search?i=chicken"))

	if state.Message != models.RequestFailedMessage {
		t.Errorf("Message = %q, want %q", state.Message, models.RequestFailedMessage)
	}
	if strings.Contains(state.Message, "connection reset") {
		t.Error("fault detail should not reach the client")
	}
}

func TestShowPage_Idle(t *testing.T) {
	src := (&testutil.MockMealSource{}).Returning(testutil.TestMeals(1))
	r := setupRouter(src)

	w := get(r, "/")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if len(src.Calls()) != 0 {
		t.Errorf("source called %d times, want 0", len(src.Calls()))
	}
	body := w.Body.String()
	if !strings.Contains(body, `<body class="dark">`) {
		t.Error("page should default to the dark theme")
	}
	if strings.Contains(body, `class="card"`) {
		t.Error("idle page should not render cards")
	}
}

func TestShowPage_Results(t *testing.T) {
	src := (&testutil.MockMealSource{}).Returning(testutil.SoupAndChili())
	r := setupRouter(src)

	w := get(r, "/?i=beans&diet=all&time=all")

	body := w.Body.String()
	if strings.Count(body, `class="card"`) != 2 {
		t.Errorf("expected 2 cards in body")
	}
	if !strings.Contains(body, "https://www.themealdb.com/meal/1") {
		t.Error("card should link to the detail page")
	}
	calls := src.Calls()
	if len(calls) != 1 || calls[0] != "beans" {
		t.Errorf("calls = %q, want [beans]", calls)
	}
}

func TestShowPage_Failure(t *testing.T) {
	src := (&testutil.MockMealSource{}).Failing(errors.New("boom"))
	r := setupRouter(src)

	body := get(r, "/?i=chicken").Body.String()

	if !strings.Contains(body, models.RequestFailedMessage) {
		t.Error("page should show the generic failure message")
	}
	if !strings.Contains(body, `id="loading" hidden`) {
		t.Error("loading indicator should be hidden after a failure")
	}
}

func TestShowPage_LightTheme(t *testing.T) {
	r := setupRouter(&testutil.MockMealSource{})

	body := get(r, "/?theme=light").Body.String()

	if !strings.Contains(body, `<body class="">`) {
		t.Error("light theme should clear the dark class")
	}
	if !strings.Contains(body, "Dark Mode") {
		t.Error("toggle label should offer Dark Mode")
	}
	if !strings.Contains(body, "theme=dark") {
		t.Error("toggle link should switch back to the dark theme")
	}
}

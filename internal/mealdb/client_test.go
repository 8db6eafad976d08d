package mealdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, status int, body string, gotQuery *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/json/v1/1/filter.php" {
			t.Errorf("path = %q, want /api/json/v1/1/filter.php", r.URL.Path)
		}
		if gotQuery != nil {
			*gotQuery = r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFilterByIngredient_Success(t *testing.T) {
	var rawQuery string
	srv := newTestServer(t, http.StatusOK, `{"meals":[
		{"idMeal":"1","strMeal":"Chicken Soup","strMealThumb":"https://img/1.jpg"},
		{"idMeal":"2","strMeal":"Vegetarian Chili","strMealThumb":"https://img/2.jpg"}
	]}`, &rawQuery)

	c := NewClient(srv.URL+"/api/json/v1/1/", "https://site.test", time.Second)
	meals, err := c.FilterByIngredient(context.Background(), "chicken breast")
	if err != nil {
		t.Fatalf("FilterByIngredient() error: %v", err)
	}
	if rawQuery != "i=chicken%20breast" {
		t.Errorf("raw query = %q, want i=chicken%%20breast", rawQuery)
	}
	if len(meals) != 2 {
		t.Fatalf("len(meals) = %d, want 2", len(meals))
	}
	if meals[1].ID != "2" || meals[1].Name != "Vegetarian Chili" || meals[1].Thumbnail != "https://img/2.jpg" {
		t.Errorf("meals[1] = %+v", meals[1])
	}
}

func TestFilterByIngredient_EscapesReservedCharacters(t *testing.T) {
	var rawQuery string
	srv := newTestServer(t, http.StatusOK, `{"meals":null}`, &rawQuery)

	c := NewClient(srv.URL+"/api/json/v1/1", "https://site.test", time.Second)
	if _, err := c.FilterByIngredient(context.Background(), "salt&pepper+"); err != nil {
		t.Fatalf("FilterByIngredient() error: %v", err)
	}
	if rawQuery != "i=salt%26pepper%2B" {
		t.Errorf("raw query = %q, want i=salt%%26pepper%%2B", rawQuery)
	}
}

func TestFilterByIngredient_NullMeals(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"meals":null}`, nil)

	c := NewClient(srv.URL+"/api/json/v1/1", "https://site.test", time.Second)
	meals, err := c.FilterByIngredient(context.Background(), "unobtainium")
	if err != nil {
		t.Fatalf("FilterByIngredient() error: %v", err)
	}
	if meals != nil {
		t.Errorf("meals = %v, want nil", meals)
	}
}

func TestFilterByIngredient_AbsentMeals(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{}`, nil)

	c := NewClient(srv.URL+"/api/json/v1/1", "https://site.test", time.Second)
	meals, err := c.FilterByIngredient(context.Background(), "unobtainium")
	if err != nil {
		t.Fatalf("FilterByIngredient() error: %v", err)
	}
	if len(meals) != 0 {
		t.Errorf("len(meals) = %d, want 0", len(meals))
	}
}

func TestFilterByIngredient_Non2xx(t *testing.T) {
	srv := newTestServer(t, http.StatusBadGateway, `upstream down`, nil)

	c := NewClient(srv.URL+"/api/json/v1/1", "https://site.test", time.Second)
	_, err := c.FilterByIngredient(context.Background(), "chicken")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusBadGateway)
	}
}

func TestFilterByIngredient_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"meals":[`, nil)

	c := NewClient(srv.URL+"/api/json/v1/1", "https://site.test", time.Second)
	if _, err := c.FilterByIngredient(context.Background(), "chicken"); err == nil {
		t.Error("FilterByIngredient should fail on malformed JSON")
	}
}

func TestFilterByIngredient_TransportFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, "https://site.test", time.Second)
	if _, err := c.FilterByIngredient(context.Background(), "chicken"); err == nil {
		t.Error("FilterByIngredient should fail when the server is unreachable")
	}
}

func TestFilterByIngredient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "https://site.test", 20*time.Millisecond)
	if _, err := c.FilterByIngredient(context.Background(), "chicken"); err == nil {
		t.Error("FilterByIngredient should fail when the client times out")
	}
}

func TestDetailURL(t *testing.T) {
	c := NewClient("https://api.test", "https://www.themealdb.com/", time.Second)
	if got := c.DetailURL("52772"); got != "https://www.themealdb.com/meal/52772" {
		t.Errorf("DetailURL() = %q", got)
	}
}

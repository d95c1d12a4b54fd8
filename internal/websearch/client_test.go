package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchPrefersNews(t *testing.T) {
	var categories []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		categories = append(categories, r.URL.Query().Get("categories"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"title":"Clinic opens","url":"https://n.example.org/1","content":"A new clinic."}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 3)
	got := c.Search(context.Background(), "Health", "new clinic")
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	if got[0].Title != "Clinic opens" || got[0].URL != "https://n.example.org/1" {
		t.Errorf("unexpected result: %+v", got[0])
	}
	if len(categories) != 1 || categories[0] != "news" {
		t.Errorf("expected a single news query, got %v", categories)
	}
}

func TestSearchFallsBackToGeneral(t *testing.T) {
	var categories []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cat := r.URL.Query().Get("categories")
		categories = append(categories, cat)
		w.Header().Set("Content-Type", "application/json")
		if cat == "news" {
			w.Write([]byte(`{"results":[]}`))
			return
		}
		w.Write([]byte(`{"results":[{"title":"Guide","url":"https://n.example.org/2","content":"General result."}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 3)
	got := c.Search(context.Background(), "Wealth", "tax prep")
	if len(got) != 1 || got[0].Title != "Guide" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if len(categories) != 2 || categories[0] != "news" || categories[1] != "general" {
		t.Errorf("expected news then general, got %v", categories)
	}
}

func TestSearchCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"title":"a","url":"https://x/1","content":"1"},
			{"title":"b","url":"https://x/2","content":"2"},
			{"title":"c","url":"https://x/3","content":"3"},
			{"title":"d","url":"https://x/4","content":"4"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 3)
	got := c.Search(context.Background(), "Civic", "elections")
	if len(got) != 3 {
		t.Errorf("got %d results, want 3", len(got))
	}
}

func TestSearchFailureReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 3)
	if got := c.Search(context.Background(), "Health", "anything"); len(got) != 0 {
		t.Errorf("expected empty results on failure, got %+v", got)
	}
}

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "title": "Backpack", "price": 109.95, "category": "men's clothing", "description": "Fits laptops"},
			{"id": 2, "title": "Gold Ring", "price": 168.0, "category": "jewelery", "description": ""}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	items, err := client.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("FetchProducts failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Title != "Backpack" || items[0].Price != 109.95 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Category != "jewelery" {
		t.Errorf("unexpected second item category: %q", items[1].Category)
	}
}

func TestFetchProductsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	if _, err := client.FetchProducts(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response, got nil")
	}
}

func TestFetchProductsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 20*time.Millisecond)
	if _, err := client.FetchProducts(context.Background()); err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}

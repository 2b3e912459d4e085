package daemonapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"mistral:instruct","size":4109000000,"digest":"abc123","modified_at":"2025-05-20T08:30:00Z"}]}`))
	}))
	defer srv.Close()

	tags, err := NewClient(srv.URL).Tags(context.Background())
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if len(tags.Models) != 1 {
		t.Fatalf("models = %+v", tags.Models)
	}
	m := tags.Models[0]
	if m.Name != "mistral:instruct" || m.Size != 4109000000 || m.Digest != "abc123" {
		t.Fatalf("unexpected model: %+v", m)
	}
	want := time.Date(2025, 5, 20, 8, 30, 0, 0, time.UTC)
	if !m.ModifiedAt.Equal(want) {
		t.Fatalf("modified_at = %v", m.ModifiedAt)
	}
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/version" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"version":"0.5.7"}`))
	}))
	defer srv.Close()

	v, err := NewClient(srv.URL).Version(context.Background())
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v.Version != "0.5.7" {
		t.Fatalf("version = %q", v.Version)
	}
}

func TestNon200Surfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "store locked", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Tags(context.Background()); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	if _, err := NewClient(srv.URL).Tags(context.Background()); err == nil {
		t.Fatalf("expected error against closed server")
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL + "/").Tags(context.Background()); err != nil {
		t.Fatalf("trailing slash should be tolerated: %v", err)
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultServer {
		t.Fatalf("host = %q, want %q", u.Host, defaultServer)
	}

	u, err = parseBaseURL("https://poems.example.com/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_ListEncodesQueryAndAuth(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotAuth string
	var gotRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ListResponse{
			Poems:      []Poem{{ID: "p1", Title: "Ozymandias"}},
			Page:       2,
			Limit:      10,
			Total:      31,
			TotalPages: 4,
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "tok-123")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	resp, err := c.List(ctx, Query{Page: 2, Limit: 10, Genre: "haiku", LikedBy: "u1", UserID: "u1", Origin: "user"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(resp.Poems) != 1 || resp.Poems[0].ID != "p1" {
		t.Fatalf("List payload = %#v, want one poem p1", resp)
	}
	if got := gotQuery.Get("page"); got != "2" {
		t.Fatalf("page query = %q, want 2", got)
	}
	if got := gotQuery.Get("genre"); got != "haiku" {
		t.Fatalf("genre query = %q, want haiku", got)
	}
	if got := gotQuery.Get("likedBy"); got != "u1" {
		t.Fatalf("likedBy query = %q, want u1", got)
	}
	if got := gotQuery.Get("origin"); got != "user" {
		t.Fatalf("origin query = %q, want user", got)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("auth header = %q, want bearer token", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatal("request id header missing")
	}
}

func TestClient_ListOmitsZeroLimit(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ListResponse{})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.List(context.Background(), Query{}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if _, ok := gotQuery["limit"]; ok {
		t.Fatalf("limit query present for zero limit: %v", gotQuery)
	}
	if _, ok := gotQuery["page"]; ok {
		t.Fatalf("page query present for zero page: %v", gotQuery)
	}
}

func TestClient_ToggleLikeSendsNoBody(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Poem{ID: "p1", Likes: []string{"u1"}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "tok")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	updated, err := c.ToggleLike(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ToggleLike returned error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("method = %q, want PUT", gotMethod)
	}
	if len(gotBody) != 0 {
		t.Fatalf("like toggle carried a body: %q", gotBody)
	}
	if !updated.LikedBy("u1") {
		t.Fatalf("updated likes = %v, want to contain u1", updated.Likes)
	}
}

func TestClient_UpdateSendsDraftBody(t *testing.T) {
	t.Parallel()

	var gotBody Draft
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Poem{ID: "p1", Title: gotBody.Title})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "tok")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	updated, err := c.Update(context.Background(), "p1", Draft{Title: "New Title", Content: "body", Genre: "free"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q, want application/json", gotContentType)
	}
	if gotBody.Title != "New Title" || gotBody.Genre != "free" {
		t.Fatalf("draft body = %#v", gotBody)
	}
	if updated.Title != "New Title" {
		t.Fatalf("updated title = %q", updated.Title)
	}
}

func TestClient_NonOKBecomesAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"poem not found"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "tok")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("Get succeeded, want error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", apiErr.Status)
	}
	if apiErr.Message != "poem not found" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestClient_DeleteHitsPath(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "tok")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Delete(context.Background(), "p9"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/poems/p9" {
		t.Fatalf("request = %s %s, want DELETE /poems/p9", gotMethod, gotPath)
	}
}

func TestClient_RequiresID(t *testing.T) {
	c, err := NewClient("", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Get(context.Background(), " "); err == nil {
		t.Fatal("Get with blank id succeeded")
	}
	if err := c.Delete(context.Background(), ""); err == nil {
		t.Fatal("Delete with empty id succeeded")
	}
}

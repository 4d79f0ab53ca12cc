package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PoemService defines the operations the poems API exposes to this client.
// Implemented by *Client; callers hold the interface so tests can substitute
// a fake.
type PoemService interface {
	List(ctx context.Context, query Query) (ListResponse, error)
	Get(ctx context.Context, id string) (*Poem, error)
	Create(ctx context.Context, draft Draft) (*Poem, error)
	Update(ctx context.Context, id string, draft Draft) (*Poem, error)
	ToggleLike(ctx context.Context, id string) (*Poem, error)
	Delete(ctx context.Context, id string) error
}

// Ensure Client implements PoemService at compile time.
var _ PoemService = (*Client)(nil)

// Client talks to the poems HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
}

const (
	defaultServer    = "127.0.0.1:8787"
	defaultUserAgent = "stanza/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given server host:port or URL. The token
// is attached as a bearer credential on every request; an empty token issues
// unauthenticated requests.
func NewClient(server, token string) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		token:     token,
		userAgent: defaultUserAgent,
	}, nil
}

// Query configures GET /poems requests. A zero Limit asks the server for the
// full collection in one page (the leaderboard's source fetch). LikedBy and
// UserID select the liked-by-me and owned-by-me membership predicates
// server-side.
type Query struct {
	Page    int
	Limit   int
	Genre   string
	Origin  string
	LikedBy string
	UserID  string
}

// List retrieves one page of poems matching the query.
func (c *Client) List(ctx context.Context, query Query) (ListResponse, error) {
	if c == nil {
		return ListResponse{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if genre := strings.TrimSpace(query.Genre); genre != "" {
		values.Set("genre", genre)
	}
	if origin := strings.TrimSpace(query.Origin); origin != "" {
		values.Set("origin", origin)
	}
	if likedBy := strings.TrimSpace(query.LikedBy); likedBy != "" {
		values.Set("likedBy", likedBy)
	}
	if userID := strings.TrimSpace(query.UserID); userID != "" {
		values.Set("userId", userID)
	}
	rel := &url.URL{Path: "/poems", RawQuery: values.Encode()}
	var payload ListResponse
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return ListResponse{}, err
	}
	return payload, nil
}

// Get retrieves a single poem by id.
func (c *Client) Get(ctx context.Context, id string) (*Poem, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("poem id required")
	}
	rel := &url.URL{Path: "/poems/" + url.PathEscape(id)}
	var payload Poem
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Create posts a new poem and returns the created record with its
// server-assigned id and timestamp.
func (c *Client) Create(ctx context.Context, draft Draft) (*Poem, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/poems"}
	var payload Poem
	if err := c.do(ctx, http.MethodPost, rel, draft, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Update saves edited fields for a poem and returns the updated record. The
// server distinguishes this from the like toggle by the presence of a body.
func (c *Client) Update(ctx context.Context, id string, draft Draft) (*Poem, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("poem id required")
	}
	rel := &url.URL{Path: "/poems/" + url.PathEscape(id)}
	var payload Poem
	if err := c.do(ctx, http.MethodPut, rel, draft, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ToggleLike flips the acting user's like on a poem. The acting user is
// whoever the bearer credential identifies; the server returns the updated
// record.
func (c *Client) ToggleLike(ctx context.Context, id string) (*Poem, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("poem id required")
	}
	rel := &url.URL{Path: "/poems/" + url.PathEscape(id)}
	var payload Poem
	if err := c.do(ctx, http.MethodPut, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Delete removes a poem.
func (c *Client) Delete(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("poem id required")
	}
	rel := &url.URL{Path: "/poems/" + url.PathEscape(id)}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	}
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(rel, resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// APIError reports a non-2xx response from the poems API. Status carries the
// HTTP status code; Message is the server's message when the error body had
// one.
type APIError struct {
	Status  int
	Path    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

func decodeAPIError(rel *url.URL, resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Path: rel.String()}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = strings.TrimSpace(body.Message)
	}
	return apiErr
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// Package wordpress integrates with the WordPress REST API v2 for schema
// injection and post retrieval. Authentication uses WordPress application
// passwords over HTTP basic auth.
package wordpress

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/c360/semschema/errors"
	"github.com/c360/semschema/health"
	"github.com/c360/semschema/metric"
	"github.com/c360/semschema/pkg/retry"
)

// schemaMetaKey is the post meta field the JSON-LD document is stored under.
const schemaMetaKey = "_geo_schema"

const maxPerPage = 100

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Config holds the WordPress connection settings.
type Config struct {
	BaseURL     string        // Site URL, e.g. https://example.com
	Username    string        // WordPress username
	AppPassword string        // Application password, not the account password
	Timeout     time.Duration // Per-request timeout
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"base_url is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return errors.WrapInvalid(err, "Config", "Validate", "invalid base_url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"base_url must use http or https")
	}
	if c.Username == "" || c.AppPassword == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"username and app_password are required")
	}
	if c.Timeout < 0 || c.Timeout > 5*time.Minute {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"timeout must be between 0 and 5m")
	}
	return nil
}

// RenderedField is WordPress's {"rendered": "..."} wrapper.
type RenderedField struct {
	Rendered string `json:"rendered"`
}

// Post is the subset of the WordPress post resource the adapter reads.
type Post struct {
	ID      int            `json:"id"`
	Link    string         `json:"link"`
	Author  int            `json:"author"`
	Title   RenderedField  `json:"title"`
	Content RenderedField  `json:"content"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// User is the subset of the WordPress user resource the adapter reads.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Client talks to one WordPress site. It is safe for concurrent use.
type Client struct {
	baseURL     string
	apiBase     string
	username    string
	appPassword string

	httpClient *http.Client
	retryCfg   retry.Config
	metrics    *metric.Metrics
	logger     *slog.Logger
}

// NewClient creates a WordPress client. metrics may be nil.
func NewClient(cfg Config, metrics *metric.Metrics, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		baseURL:     baseURL,
		apiBase:     baseURL + "/wp-json/wp/v2",
		username:    cfg.Username,
		appPassword: cfg.AppPassword,
		httpClient:  &http.Client{Timeout: timeout},
		retryCfg:    retry.CMS(),
		metrics:     metrics,
		logger:      logger.With("component", "wordpress"),
	}, nil
}

// TestConnection checks that the site's REST API root is reachable.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.do(ctx, "test_connection", http.MethodGet, c.baseURL+"/wp-json", nil)
	return err
}

// TestAuthentication checks that the configured credentials are accepted.
func (c *Client) TestAuthentication(ctx context.Context) error {
	_, err := c.do(ctx, "test_authentication", http.MethodGet, c.apiBase+"/users/me", nil)
	return err
}

// InjectSchema stores the JSON-LD document in the post's meta, where the
// site's theme or plugin renders it into the page head.
func (c *Client) InjectSchema(ctx context.Context, postID int, schema map[string]any) error {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return errors.WrapInvalid(err, "Client", "InjectSchema", "encode schema")
	}

	payload := map[string]any{
		"meta": map[string]any{
			schemaMetaKey: string(encoded),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WrapInvalid(err, "Client", "InjectSchema", "encode payload")
	}

	url := fmt.Sprintf("%s/posts/%d", c.apiBase, postID)
	_, err = c.do(ctx, "inject_schema", http.MethodPost, url, body)
	if c.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.RecordCMSInjection(status)
	}
	if err != nil {
		return err
	}

	c.logger.Info("schema injected", "post_id", postID)
	return nil
}

// GetPost fetches one post by ID.
func (c *Client) GetPost(ctx context.Context, postID int) (*Post, error) {
	data, err := c.do(ctx, "get_post", http.MethodGet,
		fmt.Sprintf("%s/posts/%d", c.apiBase, postID), nil)
	if err != nil {
		return nil, err
	}

	var post Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, errors.WrapInvalid(err, "Client", "GetPost", "decode post")
	}
	return &post, nil
}

// ListPosts fetches a page of posts. perPage is clamped to 100; page is
// 1-based.
func (c *Client) ListPosts(ctx context.Context, perPage, page int) ([]Post, error) {
	if perPage <= 0 {
		perPage = 10
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))

	return c.fetchPosts(ctx, "list_posts", query)
}

// SearchPosts fetches posts matching the query string.
func (c *Client) SearchPosts(ctx context.Context, search string, perPage int) ([]Post, error) {
	if perPage <= 0 {
		perPage = 10
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	query := url.Values{}
	query.Set("search", search)
	query.Set("per_page", strconv.Itoa(perPage))

	return c.fetchPosts(ctx, "search_posts", query)
}

func (c *Client) fetchPosts(ctx context.Context, operation string, query url.Values) ([]Post, error) {
	data, err := c.do(ctx, operation, http.MethodGet,
		c.apiBase+"/posts?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, errors.WrapInvalid(err, "Client", "fetchPosts", "decode posts")
	}
	return posts, nil
}

// GetSchema reads the stored JSON-LD document back from the post's meta.
// It returns nil without error when no schema has been stored.
func (c *Client) GetSchema(ctx context.Context, postID int) (map[string]any, error) {
	post, err := c.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	raw, ok := post.Meta[schemaMetaKey]
	if !ok || raw == nil {
		return nil, nil
	}

	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil, nil
		}
		var schema map[string]any
		if err := json.Unmarshal([]byte(v), &schema); err != nil {
			return nil, errors.WrapInvalid(err, "Client", "GetSchema", "decode stored schema")
		}
		return schema, nil
	case map[string]any:
		return v, nil
	default:
		return nil, nil
	}
}

// PostAuthor resolves the post's author to a display name, falling back to
// "Unknown" when the lookup fails.
func (c *Client) PostAuthor(ctx context.Context, post *Post) string {
	if post == nil || post.Author == 0 {
		return "Unknown"
	}

	data, err := c.do(ctx, "get_author", http.MethodGet,
		fmt.Sprintf("%s/users/%d", c.apiBase, post.Author), nil)
	if err != nil {
		c.logger.Debug("author lookup failed", "author_id", post.Author, "error", err)
		return "Unknown"
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil || user.Name == "" {
		return "Unknown"
	}
	return user.Name
}

// ExtractContent flattens a post into the plain-text form the generator
// consumes: title, blank line, then the tag-stripped body.
func ExtractContent(post *Post) string {
	if post == nil {
		return ""
	}

	content := htmlTagRegex.ReplaceAllString(post.Content.Rendered, "")
	content = whitespaceRegex.ReplaceAllString(content, " ")
	content = strings.TrimSpace(content)

	return fmt.Sprintf("%s\n\n%s", post.Title.Rendered, content)
}

// PostURL returns the post's public permalink.
func PostURL(post *Post) string {
	if post == nil {
		return ""
	}
	return post.Link
}

// Health probes the site and reports a sanitized status.
func (c *Client) Health(ctx context.Context) health.Status {
	if err := c.TestConnection(ctx); err != nil {
		return health.FromError("wordpress", err)
	}
	return health.NewHealthy("wordpress", "WordPress reachable")
}

// Close releases pooled connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// do performs one authenticated request with retry on transient failures.
// 4xx responses are terminal; 5xx and transport errors are retried.
func (c *Client) do(ctx context.Context, operation, method, url string, body []byte) ([]byte, error) {
	data, err := retry.DoWithResult(ctx, c.retryCfg, func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, retry.NonRetryable(
				errors.WrapInvalid(err, "Client", operation, "build request"))
		}
		req.SetBasicAuth(c.username, c.appPassword)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, errors.WrapTransient(err, "Client", operation, "execute request")
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.WrapTransient(err, "Client", operation, "read response")
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return payload, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, retry.NonRetryable(errors.WrapInvalid(
				fmt.Errorf("resource not found (status %d)", resp.StatusCode),
				"Client", operation, "check response"))
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, retry.NonRetryable(errors.WrapInvalid(
				fmt.Errorf("authentication rejected (status %d)", resp.StatusCode),
				"Client", operation, "check response"))
		case resp.StatusCode >= 500:
			return nil, errors.WrapTransient(
				fmt.Errorf("server error (status %d)", resp.StatusCode),
				"Client", operation, "check response")
		default:
			return nil, retry.NonRetryable(errors.WrapInvalid(
				fmt.Errorf("unexpected status %d", resp.StatusCode),
				"Client", operation, "check response"))
		}
	})

	if c.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.RecordCMSRequest(operation, status)
	}
	return data, err
}

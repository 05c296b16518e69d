package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"crmdash/internal/config"
	"crmdash/internal/types"
)

const (
	defaultBaseURL = "http://127.0.0.1:5000/api"
	defaultTimeout = 10 * time.Second
)

// NotificationPaths are the notification endpoints relative to the base URL.
// ReadPath must contain an {id} placeholder.
type NotificationPaths struct {
	ListPath   string
	ReadPath   string
	CreatePath string
}

func DefaultNotificationPaths() NotificationPaths {
	return NotificationPaths{
		ListPath:   "/notifications/global",
		ReadPath:   "/notifications/read/{id}",
		CreatePath: "/notifications",
	}
}

type Options struct {
	BaseURL           string
	Token             string
	TokenPath         string
	Timeout           time.Duration
	RequestsPerSecond float64
	Notifications     NotificationPaths
	HTTPClient        *http.Client
}

type Client struct {
	baseURL   string
	tokenPath string
	token     string
	http      *http.Client
	limiter   *rate.Limiter
	paths     NotificationPaths
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	paths := DefaultNotificationPaths()
	if strings.TrimSpace(opts.Notifications.ListPath) != "" {
		paths.ListPath = opts.Notifications.ListPath
	}
	if strings.TrimSpace(opts.Notifications.ReadPath) != "" {
		paths.ReadPath = opts.Notifications.ReadPath
	}
	if strings.TrimSpace(opts.Notifications.CreatePath) != "" {
		paths.CreatePath = opts.Notifications.CreatePath
	}
	c := &Client{
		baseURL:   baseURL,
		tokenPath: strings.TrimSpace(opts.TokenPath),
		token:     strings.TrimSpace(opts.Token),
		http:      httpClient,
		paths:     paths,
	}
	if opts.RequestsPerSecond > 0 {
		burst := max(1, int(opts.RequestsPerSecond))
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	if c.token == "" {
		_ = c.loadToken()
	}
	return c
}

func NewWithBaseURL(baseURL, token string) *Client {
	return New(Options{BaseURL: baseURL, Token: token})
}

// FromConfig builds a client from the effective configuration.
func FromConfig(cfg config.Config) (*Client, error) {
	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, err
	}
	return New(Options{
		BaseURL:           cfg.APIBaseURL(),
		Token:             cfg.API.Token,
		TokenPath:         tokenPath,
		Timeout:           cfg.APITimeout(),
		RequestsPerSecond: cfg.RequestsPerSecond(),
		Notifications: NotificationPaths{
			ListPath:   cfg.NotificationsListPath(),
			ReadPath:   cfg.NotificationsReadPath(),
			CreatePath: cfg.NotificationsCreatePath(),
		},
	}), nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, healthURL(c.baseURL), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListNotifications returns the full notification set, read and unread.
func (c *Client) ListNotifications(ctx context.Context) ([]types.NotificationItem, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+c.paths.ListPath, nil, &raw); err != nil {
		return nil, err
	}
	return decodeNotificationList(raw)
}

// MarkNotificationRead confirms a read against the backend. A response that
// does not echo read=true is reported as an error.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*types.NotificationItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("notification id is required")
	}
	path := strings.ReplaceAll(c.paths.ReadPath, "{id}", url.PathEscape(id))
	var item types.NotificationItem
	if err := c.doJSON(ctx, http.MethodPut, c.baseURL+path, nil, &item); err != nil {
		return nil, err
	}
	if !item.Read {
		return &item, fmt.Errorf("notification %s: %w", id, ErrReadNotConfirmed)
	}
	return &item, nil
}

func (c *Client) CreateNotification(ctx context.Context, req types.CreateNotificationRequest) (*types.NotificationItem, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("message is required")
	}
	var item types.NotificationItem
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+c.paths.CreatePath, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) doJSON(ctx context.Context, method, target string, body any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(c.token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) loadToken() error {
	if c.tokenPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.token = ""
			return nil
		}
		return err
	}
	c.token = strings.TrimSpace(string(data))
	return nil
}

func decodeNotificationList(raw json.RawMessage) ([]types.NotificationItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '{' {
		var wrapped NotificationsResponse
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		return wrapped.Notifications, nil
	}
	var items []types.NotificationItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// healthURL strips a trailing /api segment; the health probe lives at the
// server root.
func healthURL(baseURL string) string {
	root := strings.TrimSuffix(baseURL, "/api")
	return root + "/health"
}

var ErrReadNotConfirmed = errors.New("read not confirmed")

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsConflict reports whether err is a 409 from the backend.
func IsConflict(err error) bool {
	apiErr := AsAPIError(err)
	return apiErr != nil && apiErr.StatusCode == http.StatusConflict
}

func IsNotFound(err error) bool {
	apiErr := AsAPIError(err)
	return apiErr != nil && apiErr.StatusCode == http.StatusNotFound
}

// Package rest implements the service.Service interface against the
// Tasks collection of a JSON REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

const contentType = "application/json; charset=UTF-8"

var errEmptyID = errors.New("empty task id")

// Client implements service.Service over HTTP.
type Client struct {
	http       *http.Client
	collection string
	timeout    time.Duration
	log        *slog.Logger
	ids        ids
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the collection configured in cfg.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.CollectionURL())
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url: unsupported scheme %q", u.Scheme)
	}

	c := &Client{
		http:       &http.Client{},
		collection: u.String(),
		timeout:    cfg.Timeout,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var body []wireTask
	if err := c.do(ctx, "list", http.MethodGet, c.collection, nil, &body); err != nil {
		return nil, err
	}

	result := make([]service.Task, 0, len(body))
	for _, w := range body {
		c.ids.remember(w.ID)
		result = append(result, w.task())
	}
	return result, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, draft service.Task) (service.Task, error) {
	var created wireTask
	if err := c.do(ctx, "create", http.MethodPost, c.collection, newWireDraft(draft), &created); err != nil {
		return service.Task{}, err
	}
	if created.ID.Key == "" {
		return service.Task{}, &service.Error{Op: "create", Kind: service.ErrServer, Err: service.ErrMissingID}
	}
	c.ids.remember(created.ID)
	return created.task(), nil
}

// UpdateTask implements service.Service. The id goes back in the body in the
// form the service last returned it.
func (c *Client) UpdateTask(ctx context.Context, id string, task service.Task) (service.Task, error) {
	if id == "" {
		return service.Task{}, &service.Error{Op: "update", Kind: service.ErrNotFound, Err: errEmptyID}
	}
	var updated wireTask
	if err := c.do(ctx, "update", http.MethodPut, c.itemURL(id), newWireTask(c.ids.lookup(id), task), &updated); err != nil {
		return service.Task{}, err
	}
	if updated.ID.Key == "" {
		return service.Task{}, &service.Error{Op: "update", Kind: service.ErrServer, Err: service.ErrMissingID}
	}
	c.ids.remember(updated.ID)
	return updated.task(), nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if id == "" {
		return &service.Error{Op: "delete", Kind: service.ErrNotFound, Err: errEmptyID}
	}
	if err := c.do(ctx, "delete", http.MethodDelete, c.itemURL(id), nil, nil); err != nil {
		return err
	}
	c.ids.forget(id)
	return nil
}

func (c *Client) itemURL(id string) string {
	return c.collection + "/" + url.PathEscape(id)
}

// do performs exactly one round trip. in is JSON-encoded when non-nil;
// out is decoded from the response when non-nil.
func (c *Client) do(ctx context.Context, op, method, target string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &service.Error{Op: op, Kind: service.ErrValidation, Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return &service.Error{Op: op, Kind: service.ErrNetwork, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if out != nil {
		req.Header.Set("Accept", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "op", op, "method", method, "url", target, "error", err)
		return &service.Error{Op: op, Kind: service.ErrNetwork, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	c.log.Debug("request done",
		"op", op,
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &service.Error{Op: op, Kind: service.ErrServer, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// statusError maps a non-2xx response to an error kind.
func statusError(op string, resp *http.Response) error {
	kind := service.ErrServer
	switch resp.StatusCode {
	case http.StatusNotFound:
		if op == "update" || op == "delete" {
			kind = service.ErrNotFound
		}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if op == "create" || op == "update" {
			kind = service.ErrValidation
		}
	}

	var cause error
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if msg := strings.TrimSpace(string(data)); msg != "" {
		cause = errors.New(msg)
	}
	return &service.Error{Op: op, Kind: kind, StatusCode: resp.StatusCode, Err: cause}
}

// unwrapURLError drops the *url.Error envelope, which repeats method and URL.
func unwrapURLError(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return ue.Err
	}
	return err
}

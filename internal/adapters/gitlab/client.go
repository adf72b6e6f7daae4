// Package gitlab reads the group and project catalog from the GitLab REST
// API (v4).
package gitlab

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"gitlabtree/internal/domain"
	"gitlabtree/internal/ports"
)

const (
	tokenHeader    = "PRIVATE-TOKEN"
	nextPageHeader = "X-Next-Page"
	defaultTimeout = 30 * time.Second
)

// StatusError is returned for any non-2xx response
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gitlab: %s returned %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Options configure a Client. Nil booleans are omitted from requests.
type Options struct {
	BaseURL          string
	Token            string
	AllAvailable     *bool
	Owned            *bool
	TopLevelOnly     *bool
	IncludeSubgroups *bool
	Visibility       string
	HTTPClient       *http.Client
	Log              *logrus.Entry
}

// Client implements ports.CatalogSource over HTTP
type Client struct {
	base string
	opts Options
	http *http.Client
	log  *logrus.Entry
}

var _ ports.CatalogSource = (*Client)(nil)

// New creates a client for the instance at opts.BaseURL
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	log := opts.Log
	if log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		log = logrus.NewEntry(logger)
	}
	return &Client{
		base: strings.TrimRight(opts.BaseURL, "/"),
		opts: opts,
		http: hc,
		log:  log,
	}
}

// ListGroups lists groups the user is a member of
func (c *Client) ListGroups(ctx context.Context, req ports.PageRequest) (ports.Page[domain.Group], error) {
	q := pageQuery(req)
	q.Set("membership", "true")
	setBool(q, "all_available", c.opts.AllAvailable)
	setBool(q, "owned", c.opts.Owned)
	setBool(q, "top_level_only", c.opts.TopLevelOnly)
	c.setVisibility(q)

	var groups []domain.Group
	next, err := c.get(ctx, "/api/v4/groups", q, &groups)
	if err != nil {
		return ports.Page[domain.Group]{}, err
	}
	return ports.Page[domain.Group]{Items: groups, NextPage: next}, nil
}

// ListGroupProjects lists the projects of one group
func (c *Client) ListGroupProjects(ctx context.Context, groupID int64, req ports.PageRequest) (ports.Page[domain.Project], error) {
	q := pageQuery(req)
	q.Set("simple", "true")
	setBool(q, "include_subgroups", c.opts.IncludeSubgroups)
	c.setVisibility(q)

	var projects []domain.Project
	next, err := c.get(ctx, fmt.Sprintf("/api/v4/groups/%d/projects", groupID), q, &projects)
	if err != nil {
		return ports.Page[domain.Project]{}, err
	}
	return ports.Page[domain.Project]{Items: projects, NextPage: next}, nil
}

// ListOwnedProjects lists projects owned by the user
func (c *Client) ListOwnedProjects(ctx context.Context, req ports.PageRequest) (ports.Page[domain.Project], error) {
	q := pageQuery(req)
	q.Set("simple", "true")
	q.Set("owned", "true")
	c.setVisibility(q)

	var projects []domain.Project
	next, err := c.get(ctx, "/api/v4/projects", q, &projects)
	if err != nil {
		return ports.Page[domain.Project]{}, err
	}
	return ports.Page[domain.Project]{Items: projects, NextPage: next}, nil
}

// CurrentUser returns the authenticated user. A missing web URL falls back
// to <base>/<username>.
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var user domain.User
	if _, err := c.get(ctx, "/api/v4/user", nil, &user); err != nil {
		return domain.User{}, err
	}
	if user.WebURL == "" {
		user.WebURL = c.base + "/" + user.Username
	}
	return user, nil
}

// get decodes the response body into out and returns the next page number,
// 0 when the response was the last page
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) (int, error) {
	endpoint := c.base + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build request %s: %w", endpoint, err)
	}
	req.Header.Set(tokenHeader, c.opts.Token)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"url":     endpoint,
		"status":  resp.StatusCode,
		"elapsed": time.Since(started).Round(time.Millisecond),
	}).Debug("gitlab request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, &StatusError{Status: resp.StatusCode, URL: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, fmt.Errorf("decode %s: %w", endpoint, err)
	}

	return parseNextPage(resp.Header.Get(nextPageHeader))
}

func parseNextPage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s header: %s", nextPageHeader, raw)
	}
	return n, nil
}

func pageQuery(req ports.PageRequest) url.Values {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(req.PerPage))
	q.Set("page", strconv.Itoa(req.Page))
	return q
}

func setBool(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}

func (c *Client) setVisibility(q url.Values) {
	if c.opts.Visibility != "" {
		q.Set("visibility", c.opts.Visibility)
	}
}

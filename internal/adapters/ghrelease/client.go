// Package ghrelease publishes releases through the GitHub REST API.
package ghrelease

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/shipper/internal/core/domain"
	"go.trai.ch/shipper/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ReleaseHost = (*Client)(nil)

const defaultBaseURL = "https://api.github.com"

// Client implements ports.ReleaseHost against the GitHub releases API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used for enterprise hosts and
// tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a release client authenticating with token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createReleaseRequest struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
	Draft   bool   `json:"draft"`
}

type createReleaseResponse struct {
	ID int64 `json:"id"`
}

// CreateRelease creates the release bound to rel.Tag and uploads every
// artifact in the set as a release asset.
func (c *Client) CreateRelease(ctx context.Context, rel domain.Release) error {
	id, err := c.create(ctx, rel)
	if err != nil {
		return err
	}

	for _, artifact := range rel.Artifacts {
		if err := c.upload(ctx, rel.Repository, id, artifact); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) create(ctx context.Context, rel domain.Release) (int64, error) {
	payload, err := json.Marshal(createReleaseRequest{
		TagName: rel.Tag,
		Name:    rel.Tag,
		Body:    rel.Notes,
	})
	if err != nil {
		return 0, zerr.Wrap(err, "failed to encode release request")
	}

	endpoint := fmt.Sprintf("%s/repos/%s/releases", c.baseURL, rel.Repository)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, zerr.Wrap(err, "failed to build release request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "release creation failed"), "repository", rel.Repository)
	}
	defer resp.Body.Close() //nolint:errcheck // best effort close in defer

	if resp.StatusCode != http.StatusCreated {
		wrapped := zerr.With(zerr.New("unexpected status creating release"), "status", resp.StatusCode)
		return 0, zerr.With(wrapped, "repository", rel.Repository)
	}

	var created createReleaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, zerr.Wrap(err, "failed to decode release response")
	}
	return created.ID, nil
}

func (c *Client) upload(ctx context.Context, repository string, releaseID int64, artifact domain.PackageArtifact) error {
	f, err := os.Open(artifact.Path) //nolint:gosec // path produced by the pipeline
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open artifact"), "path", artifact.Path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	info, err := f.Stat()
	if err != nil {
		return zerr.Wrap(err, "failed to stat artifact")
	}

	endpoint := fmt.Sprintf("%s/repos/%s/releases/%d/assets?name=%s",
		c.uploadBase(), repository, releaseID, url.QueryEscape(filepath.Base(artifact.Path)))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, f)
	if err != nil {
		return zerr.Wrap(err, "failed to build upload request")
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", "application/octet-stream")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "asset upload failed"), "path", artifact.Path)
	}
	defer resp.Body.Close() //nolint:errcheck // best effort close in defer
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		wrapped := zerr.With(zerr.New("unexpected status uploading asset"), "status", resp.StatusCode)
		return zerr.With(wrapped, "path", artifact.Path)
	}
	return nil
}

// uploadBase returns the asset upload host. api.github.com uses a separate
// uploads host; enterprise and test overrides keep one base.
func (c *Client) uploadBase() string {
	if c.baseURL == defaultBaseURL {
		return "https://uploads.github.com"
	}
	return c.baseURL
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

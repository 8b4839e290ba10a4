package postal

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"context"

	"github.com/arkodas/banglamart-backend/pkg/config"
	pkgerrors "github.com/arkodas/banglamart-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://api.postalpincode.in"
	statusSuccess              = "Success"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

// Client wraps the India Post pincode lookup API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured lookup base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the pincode lookup client from configuration.
func NewClient(cfg config.PostalConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}

	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	if trimmed := strings.TrimSpace(cfg.BaseURL); trimmed != "" {
		client.baseURL = trimmed
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client
}

// PostOffice is the normalized record returned for a pincode.
type PostOffice struct {
	Name     string
	District string
	State    string
	Pincode  string
}

type lookupEnvelope struct {
	Status     string `json:"Status"`
	Message    string `json:"Message"`
	PostOffice []struct {
		Name     string `json:"Name"`
		District string `json:"District"`
		State    string `json:"State"`
		Pincode  string `json:"Pincode"`
	} `json:"PostOffice"`
}

// Lookup resolves a pincode to its first listed post office. A pincode the
// API does not know yields CodeNotFound; transport failures yield
// CodeDependency. Single shot, no retries.
func (c *Client) Lookup(ctx context.Context, pincode string) (*PostOffice, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "postal client not configured")
	}
	trimmed := strings.TrimSpace(pincode)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pincode is required")
	}

	url := fmt.Sprintf("%s/pincode/%s", strings.TrimRight(c.baseURL, "/"), trimmed)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build pincode request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute pincode request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "pincode request failed")
	}

	var envelope []lookupEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode pincode response")
	}

	if len(envelope) == 0 || envelope[0].Status != statusSuccess || len(envelope[0].PostOffice) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pincode not found")
	}

	first := envelope[0].PostOffice[0]
	return &PostOffice{
		Name:     first.Name,
		District: first.District,
		State:    first.State,
		Pincode:  first.Pincode,
	}, nil
}

// Package hunter provides a client for the Hunter.io domain-search API,
// the pipeline's contact-intelligence collaborator.
package hunter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.hunter.io/v2"

// Client performs domain searches against the Hunter API.
type Client interface {
	// DomainSearch returns named individuals at a domain, optionally
	// filtered by department.
	DomainSearch(ctx context.Context, req DomainSearchRequest) (*DomainSearchResponse, error)
}

// DomainSearchRequest parameterizes a domain search.
type DomainSearchRequest struct {
	Domain     string
	Department string
	Limit      int
}

// DomainSearchResponse is the parsed response envelope.
type DomainSearchResponse struct {
	Data DomainData `json:"data"`
}

// DomainData holds the emails found for a domain.
type DomainData struct {
	Domain       string  `json:"domain"`
	Organization string  `json:"organization"`
	Emails       []Email `json:"emails"`
}

// Email is a single person-level result.
type Email struct {
	Value        string       `json:"value"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Position     string       `json:"position"`
	Seniority    string       `json:"seniority"`
	Department   string       `json:"department"`
	LinkedIn     string       `json:"linkedin"`
	Phone        string       `json:"phone_number"`
	Confidence   int          `json:"confidence"`
	Verification Verification `json:"verification"`
}

// Verification reports Hunter's deliverability check for an email.
type Verification struct {
	Status string `json:"status"`
	Date   string `json:"date"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) { c.baseURL = url }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Hunter API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) DomainSearch(ctx context.Context, req DomainSearchRequest) (*DomainSearchResponse, error) {
	if req.Domain == "" {
		return nil, eris.New("hunter: domain is required")
	}

	params := url.Values{}
	params.Set("domain", req.Domain)
	params.Set("api_key", c.apiKey)
	if req.Department != "" {
		params.Set("department", req.Department)
	}
	if req.Limit > 0 {
		params.Set("limit", strconv.Itoa(req.Limit))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/domain-search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: create request")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("hunter: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result DomainSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "hunter: unmarshal response")
	}
	return &result, nil
}

package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobsearch/internal/models"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL   = "https://api.hh.ru"
	DefaultUserAgent = "api-test-agent"
	DefaultPerPage   = 20
)

// Doer sends a prepared request. network.Client satisfies it.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// Config defines hh API client settings.
type Config struct {
	BaseURL   string
	UserAgent string
	Logger    zerolog.Logger
}

// Client talks to the hh.ru vacancies API.
type Client struct {
	doer      Doer
	baseURL   string
	userAgent string
	logger    zerolog.Logger
}

func NewClient(doer Doer, cfg Config) (*Client, error) {
	if doer == nil {
		return nil, fmt.Errorf("hh: http client is required")
	}

	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		doer:      doer,
		baseURL:   baseURL,
		userAgent: userAgent,
		logger:    cfg.Logger.With().Str("component", "hh").Logger(),
	}, nil
}

// SearchJobs fetches one page of vacancies matching params.Query.
func (c *Client) SearchJobs(ctx context.Context, params models.SearchParams) (SearchPage, error) {
	var page SearchPage

	target, err := c.searchURL(params)
	if err != nil {
		return page, fmt.Errorf("hh: search: %w", err)
	}
	if err := c.getJSON(ctx, target, &page); err != nil {
		return page, fmt.Errorf("hh: search %q page %d: %w", params.Query, params.Page, err)
	}
	if page.Items == nil {
		page.Items = []Vacancy{}
	}
	return page, nil
}

// GetJob fetches the full record of a single vacancy.
func (c *Client) GetJob(ctx context.Context, id string) (VacancyDetail, error) {
	var detail VacancyDetail

	target, err := c.vacancyURL(id)
	if err != nil {
		return detail, fmt.Errorf("hh: get vacancy: %w", err)
	}
	if err := c.getJSON(ctx, target, &detail); err != nil {
		return detail, fmt.Errorf("hh: get vacancy %s: %w", id, err)
	}
	return detail, nil
}

func (c *Client) searchURL(params models.SearchParams) (string, error) {
	u, err := c.parseBase()
	if err != nil {
		return "", err
	}
	u.Path = path.Join("/", u.Path, "vacancies")

	perPage := params.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	values := url.Values{}
	values.Set("text", params.Query)
	values.Set("page", strconv.Itoa(params.Page))
	values.Set("per_page", strconv.Itoa(perPage))
	u.RawQuery = values.Encode()
	return u.String(), nil
}

func (c *Client) vacancyURL(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty vacancy id", ErrInvalidURL)
	}
	u, err := c.parseBase()
	if err != nil {
		return "", err
	}
	u = u.JoinPath("vacancies", id)
	return u.String(), nil
}

func (c *Client) parseBase() (*url.URL, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base url %q", ErrInvalidURL, c.baseURL)
	}
	return u, nil
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", target).Msg("request")

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= fhttp.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

package network

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rs/zerolog"
)

const DefaultTimeout = 30 * time.Second

var ErrRequestFailed = errors.New("request failed")

// Options configures the transport. Zero values fall back to defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Rotator   *Rotator
	Logger    zerolog.Logger
}

// Client is the fhttp transport every outbound request goes through.
// It satisfies hh.Doer.
type Client struct {
	http      tls_client.HttpClient
	rotator   *Rotator
	userAgent string
	logger    zerolog.Logger
}

func NewClient(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	jar, _ := fhttpcookiejar.New(nil)
	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(int(timeout/time.Second)),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, fmt.Errorf("network: create client: %w", err)
	}

	return &Client{
		http:      client,
		rotator:   opts.Rotator,
		userAgent: opts.UserAgent,
		logger:    opts.Logger.With().Str("component", "network").Logger(),
	}, nil
}

// Do sends req through the next healthy proxy, if any are configured, and
// reports the response status back to the rotator.
func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy, err := c.rotateProxy()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("url", req.URL.String()).Msg("request failed")
		return nil, err
	}
	if proxy != nil {
		c.rotator.Report(proxy, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) rotateProxy() (*url.URL, error) {
	if c.rotator == nil || c.rotator.Len() == 0 {
		return nil, nil
	}
	proxy, err := c.rotator.Next()
	if err != nil {
		return nil, err
	}
	if err := c.http.SetProxy(proxy.String()); err != nil {
		return nil, fmt.Errorf("set proxy %s: %w", proxy.Redacted(), err)
	}
	c.logger.Debug().Str("proxy", proxy.Redacted()).Msg("using proxy")
	return proxy, nil
}

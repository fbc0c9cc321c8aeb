package weather

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds the whole request, from dial to the last body byte.
const DefaultTimeout = 3 * time.Second

// Client fetches current weather readings. It holds no per-request state and
// is safe for concurrent use.
type Client struct {
	endpoint   Endpoint
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout replaces the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithTransport sets the round tripper used for requests. The client's own
// timeout still applies.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// NewClient returns a client for endpoint with the default timeout unless an
// option replaces it.
func NewClient(endpoint Endpoint, options ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Endpoint returns the endpoint the client was built with.
func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}

// Timeout returns the configured request timeout.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// Fetch issues a single GET for q and returns the parsed reading. Errors are
// always *Error, either NetworkFailure or MalformedResponse.
func (c *Client) Fetch(ctx context.Context, q Query) (Reading, error) {
	requestURL := c.endpoint.BuildRequestURL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), nil)
	if err != nil {
		return Reading{}, newNetworkFailure(errors.Wrap(err, "creating request"))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error repeats the URL, including the key
		return Reading{}, newNetworkFailure(redactURLError(err, requestURL))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reading{}, newNetworkFailure(errors.Wrap(err, "reading response body"))
	}

	if resp.StatusCode != http.StatusOK {
		return Reading{}, newMalformedResponse(parseProviderError(resp.StatusCode, body))
	}

	return ParseReading(body)
}

// FetchAsync runs Fetch on its own goroutine. The returned channel receives
// exactly one Result and is then closed.
func (c *Client) FetchAsync(ctx context.Context, q Query) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		out <- NewResult(c.Fetch(ctx, q))
	}()
	return out
}

// Delegate receives the outcome of Get. Exactly one method is called, from a
// goroutine owned by the client.
type Delegate interface {
	OnSuccess(reading Reading)
	OnFailure(err error)
}

// Get fetches q in the background and reports the outcome to d.
func (c *Client) Get(ctx context.Context, q Query, d Delegate) {
	go func() {
		reading, err := c.Fetch(ctx, q)
		if err != nil {
			d.OnFailure(err)
			return
		}
		d.OnSuccess(reading)
	}()
}

type providerErrorBody struct {
	// cod is a number on some endpoints and a string on others
	Cod     json.RawMessage `json:"cod"`
	Message string          `json:"message"`
}

func parseProviderError(status int, body []byte) *ProviderError {
	perr := &ProviderError{StatusCode: status}
	var b providerErrorBody
	if err := json.Unmarshal(body, &b); err != nil {
		return perr
	}
	perr.Message = b.Message
	var code string
	if err := json.Unmarshal(b.Cod, &code); err == nil {
		perr.Code = code
	} else if len(b.Cod) > 0 {
		perr.Code = string(b.Cod)
	}
	return perr
}

type redactedError struct {
	msg   string
	cause error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.cause }

func redactURLError(err error, u *url.URL) error {
	return &redactedError{
		msg:   strings.ReplaceAll(err.Error(), u.String(), RedactedURL(u)),
		cause: err,
	}
}

// Package backend provides a limited implementation of the undocumented
// chat backend API necessary to run conversations and enumerate models.
// It speaks to the same endpoints as the web client, so it needs the
// browser-grade HTTP client from chttp and a bearer access token from
// one of the auth providers.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/internal/chttp"
)

const defAPIPath = "https://" + auth.Host + "/backend-api"

// maximum size of an error response body that is read for the detail
// message.
const maxErrBody = 4096

type Client struct {
	cl      *http.Client
	apiPath string
	token   string
}

// Option is the Client option.
type Option func(*Client)

// OptionAPIURL overrides the API base URL.  Useful for tests and for
// proxy frontends.
func OptionAPIURL(s string) Option {
	return func(cl *Client) {
		cl.apiPath = strings.TrimSuffix(s, "/")
	}
}

// OptionHTTPClient sets the http client to use.
func OptionHTTPClient(hcl *http.Client) Option {
	return func(cl *Client) {
		cl.cl = hcl
	}
}

func NewWithClient(token string, cl *http.Client, opt ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}
	c := &Client{
		cl:      cl,
		token:   token,
		apiPath: defAPIPath,
	}
	for _, o := range opt {
		o(c)
	}
	return c, nil
}

func New(token string, cookies []*http.Cookie, opt ...Option) (*Client, error) {
	return NewWithClient(token, chttp.New("https://"+auth.Host, cookies), opt...)
}

func (cl *Client) Raw() *http.Client {
	return cl.cl
}

// APIError is returned when the server responds with a non-2xx status.
type APIError struct {
	StatusCode int
	RetryAfter time.Duration
	Detail     string
}

func (e *APIError) Error() string {
	s := fmt.Sprintf("server error: %s (%d)", http.StatusText(e.StatusCode), e.StatusCode)
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}

func (cl *Client) get(ctx context.Context, path string) (*http.Response, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, cl.apiPath+path, nil)
	if err != nil {
		return nil, err
	}
	cl.setHeaders(r, "application/json")
	return cl.do(r)
}

func (cl *Client) post(ctx context.Context, path string, accept string, req any) (*http.Response, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, cl.apiPath+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	r.Header.Set("Content-Type", "application/json")
	cl.setHeaders(r, accept)
	return cl.do(r)
}

func (cl *Client) setHeaders(r *http.Request, accept string) {
	r.Header.Set("Authorization", "Bearer "+cl.token)
	r.Header.Set("Accept", accept)
}

// do sends the request and converts unsuccessful responses into an
// *APIError.
func (cl *Client) do(r *http.Request) (*http.Response, error) {
	resp, err := cl.cl.Do(r)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

func (cl *Client) ParseResponse(v any, resp *http.Response) error {
	defer resp.Body.Close()
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(v)
}

// checkStatus returns an *APIError if the response status is not a
// success.  It consumes up to maxErrBody of the body looking for the
// detail message that the server attaches to errors.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if sec, err := strconv.Atoi(ra); err == nil && sec >= 0 {
			apiErr.RetryAfter = time.Duration(sec) * time.Second
		}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}
	apiErr.Detail = errDetail(body)
	return apiErr
}

// errDetail extracts the detail message from the error body.  The server
// returns either {"detail":"text"} or {"detail":{"message":"text",...}},
// anything else is returned raw.
func errDetail(body []byte) string {
	var s struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &s); err == nil && s.Detail != "" {
		return s.Detail
	}
	var o struct {
		Detail struct {
			Message string `json:"message"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &o); err == nil && o.Detail.Message != "" {
		return o.Detail.Message
	}
	return strings.TrimSpace(string(body))
}

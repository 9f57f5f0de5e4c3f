package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/jrsteele09/go-hr-console/tenants"
	"github.com/jrsteele09/go-hr-console/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	HeaderRequestID = "X-Request-ID"

	defaultTimeout     = 30 * time.Second
	maxResponseBytes   = 10 << 20
	fallbackAPIMessage = "API request failed"
	contentTypeJSON    = "application/json"
)

// Credentials is the session as seen by the client: a token and tenant code to send, and
// the expiry side channel to pull when the server rejects them.
type Credentials interface {
	Credentials() (token, tenantCode string, ok bool)
	Expire()
}

// Client executes authorised requests against the HR API. It holds no session state of its own.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	credentials Credentials
	requestID   func() string
	logger      zerolog.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestIDFunc replaces the uuid request id generator
func WithRequestIDFunc(fn func() string) ClientOption {
	return func(c *Client) {
		c.requestID = fn
	}
}

func New(baseURL string, credentials Credentials, options ...ClientOption) (*Client, error) {
	if credentials == nil {
		return nil, errors.New("[api.New] credentials are required")
	}
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, errors.Wrap(err, "[api.New] base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("[api.New] base url %q must be http or https", baseURL)
	}

	c := &Client{
		baseURL:     u,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		credentials: credentials,
		requestID:   func() string { return uuid.New().String() },
		logger:      log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

func (c *Client) Users() *UserRepo {
	return &UserRepo{client: c}
}

func (c *Client) Departments() *DepartmentRepo {
	return &DepartmentRepo{client: c}
}

func (c *Client) Designations() *DesignationRepo {
	return &DesignationRepo{client: c}
}

func (c *Client) Roles() *RoleRepo {
	return &RoleRepo{client: c}
}

// endpoint joins path segments onto the base url. Segments are escaped, so an id can never
// change the route, and a trailing slash on the base never produces "//".
func (c *Client) endpoint(query url.Values, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u := c.baseURL.JoinPath(escaped...)
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends an authorised request. out may be nil; a 204 or empty body leaves it untouched.
func (c *Client) do(ctx context.Context, method string, query url.Values, body any, out any, segments ...string) error {
	rawToken, tenantCode, ok := c.credentials.Credentials()
	if !ok {
		return hrerrors.ErrUnauthenticated
	}

	req, err := c.newRequest(ctx, method, c.endpoint(query, segments...), body)
	if err != nil {
		return err
	}
	token.Bearer(rawToken).SetAuthHeader(req)
	req.Header.Set(tenants.HeaderTenantCode, tenantCode)

	status, payload, err := c.send(req)
	if err != nil {
		return err
	}

	switch {
	case status == http.StatusUnauthorized:
		c.credentials.Expire()
		return &hrerrors.SessionExpiredError{Path: req.URL.Path}
	case status < 200 || status > 299:
		return &hrerrors.APIError{StatusCode: status, Message: errorMessage(payload, fallbackAPIMessage)}
	case status == http.StatusNoContent || len(bytes.TrimSpace(payload)) == 0 || out == nil:
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrapf(err, "[Client.do] decode %s %s", method, req.URL.Path)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, target string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "[Client.newRequest] encode body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.newRequest]")
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(HeaderRequestID, c.requestID())
	return req, nil
}

// send performs the round trip and reads the whole body. Only transport failures are errors here.
func (c *Client) send(req *http.Request) (int, []byte, error) {
	start := time.Now()
	op := req.Method + " " + req.URL.Path

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("request_id", req.Header.Get(HeaderRequestID)).Msg(op)
		return 0, nil, &hrerrors.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, &hrerrors.NetworkError{Op: op, Err: err}
	}

	c.logger.Debug().
		Str("request_id", req.Header.Get(HeaderRequestID)).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg(op)
	return resp.StatusCode, payload, nil
}

// errorMessage prefers the body's "message", then "error" (a structured error is passed on as
// its JSON text), then fallback.
func errorMessage(payload []byte, fallback string) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(payload, &body); err != nil {
		return fallback
	}
	if msg := jsonString(body["message"]); msg != "" {
		return msg
	}
	raw := bytes.TrimSpace(body["error"])
	if len(raw) == 0 || string(raw) == "null" {
		return fallback
	}
	if raw[0] == '"' {
		if msg := jsonString(raw); msg != "" {
			return msg
		}
		return fallback
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

func jsonString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// getList decodes a list endpoint. A body that is not an array is read as an empty list.
func getList[T any](ctx context.Context, c *Client, query url.Values, segments ...string) ([]*T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, query, nil, &raw, segments...); err != nil {
		return nil, err
	}
	list := []*T{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		if len(raw) > 0 {
			c.logger.Debug().Strs("path", segments).Msg("list endpoint did not answer with an array")
		}
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.Wrapf(err, "[getList] decode %v", segments)
	}
	return list, nil
}

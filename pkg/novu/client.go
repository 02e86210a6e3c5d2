package novu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kursadbilgin/novu-go/internal/observability"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.novu.co/v1"

const (
	triggerPath       = "/events/trigger"
	subscribersPath   = "/subscribers"
	bulkSuffix        = "/bulk"
	broadcastSuffix   = "/broadcast"
	credentialsSuffix = "/credentials"
)

// API lists every Novu operation the client supports.
type API interface {
	TriggerEvent(ctx context.Context, trigger Trigger) (*Result, error)
	BulkTrigger(ctx context.Context, triggers []Trigger) (*Result, error)
	BroadcastEvent(ctx context.Context, trigger Trigger) (*Result, error)
	CancelEvent(ctx context.Context, transactionID string) (*Result, error)
	GetSubscriber(ctx context.Context, subscriberID string) (*Result, error)
	UpsertSubscriber(ctx context.Context, subscriber Subscriber) (*Result, error)
	UpdateSubscriberCredentials(ctx context.Context, subscriberID string, providerID ProviderID, credentials map[string]any) (*Result, error)
	DeleteSubscriber(ctx context.Context, subscriberID string) (*Result, error)
}

// Observer receives one call per request. statusCode is 0 when no response arrived.
type Observer interface {
	ObserveRequest(operation string, statusCode int, duration time.Duration)
}

var _ API = (*Client)(nil)

// Client talks to a Novu server. Its configuration is fixed at construction, so one
// Client may serve any number of goroutines.
type Client struct {
	client   *resty.Client
	baseURL  string
	headers  map[string]string
	timeout  time.Duration
	logger   *zap.Logger
	observer Observer
}

type Option func(*options)

type options struct {
	baseURL  string
	client   *resty.Client
	timeout  time.Duration
	logger   *zap.Logger
	observer Observer
}

func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithRestyClient replaces the underlying transport. New sets its retry count to 0, so
// pass a client that is not shared with code relying on resty retries. Its timeout is
// left untouched.
func WithRestyClient(client *resty.Client) Option {
	return func(o *options) {
		if client != nil {
			o.client = client
		}
	}
}

// WithTimeout bounds each request through its context, on top of any deadline the
// caller sets. Zero means no bound.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithLogger sets the request logger. Entries carry a correlationId field when the
// request context was prepared with WithCorrelationID.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api key is required", ErrValidation)
	}

	o := options{
		baseURL: DefaultBaseURL,
		logger:  zap.NewNop(),
	}
	for _, fn := range opts {
		fn(&o)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(o.baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base url is required", ErrValidation)
	}

	client := o.client
	if client == nil {
		client = resty.New()
	}
	client.SetRetryCount(0)

	return &Client{
		client:  client,
		baseURL: baseURL,
		headers: map[string]string{
			"Authorization": "ApiKey " + apiKey,
			"Content-Type":  "application/json",
		},
		timeout:  o.timeout,
		logger:   o.logger,
		observer: o.observer,
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// WithCorrelationID returns a context whose requests are logged with correlationID.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return observability.WithCorrelationID(ctx, correlationID)
}

// Headers returns a copy of the headers sent with every request.
func (c *Client) Headers() map[string]string {
	out := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		out[k] = v
	}
	return out
}

type request struct {
	operation string
	method    string
	path      string
	body      any
}

func (c *Client) do(ctx context.Context, req request) (*Result, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("novu client is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL + req.path
	logger := observability.WithContextLogger(c.logger, ctx)

	r := c.client.R().
		SetContext(ctx).
		SetHeaders(c.headers)
	if req.body != nil {
		r.SetBody(req.body)
	}

	start := time.Now()
	response, err := r.Execute(req.method, endpoint)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(req.operation, 0, elapsed)
		logger.Warn("novu request failed",
			zap.String("operation", req.operation),
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return nil, &RequestError{
			Operation: req.operation,
			Method:    req.method,
			URL:       endpoint,
			Cause:     err,
		}
	}

	statusCode := response.StatusCode()
	c.observe(req.operation, statusCode, elapsed)

	body, err := decodeBody(response.Body())
	if err != nil {
		logger.Warn("novu response is not valid json",
			zap.String("operation", req.operation),
			zap.Int("statusCode", statusCode),
			zap.Error(err),
		)
		return nil, &RequestError{
			Operation:  req.operation,
			Method:     req.method,
			URL:        endpoint,
			StatusCode: statusCode,
			Message:    "invalid response body",
			Cause:      err,
		}
	}

	logger.Debug("novu request completed",
		zap.String("operation", req.operation),
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("statusCode", statusCode),
		zap.Duration("duration", elapsed),
	)

	result := Normalize(statusCode, body)
	return &result, nil
}

func (c *Client) observe(operation string, statusCode int, duration time.Duration) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveRequest(operation, statusCode, duration)
}

func decodeBody(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body, nil
}

func subscriberPath(subscriberID string) string {
	return subscribersPath + "/" + url.PathEscape(subscriberID)
}

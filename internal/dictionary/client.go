package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/at-ishikawa/latinlookup/internal/dictionary/latinwords"
	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const (
	DefaultBaseURL   = "https://latin-words.com"
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:137.0) Gecko/20100101 Firefox/137.0"

	translatePath = "/cgi-bin/translate.cgi"
)

//go:generate mockgen -source=client.go -destination=../mocks/dictionary/mock_transport.go -package=mock_dictionary Transport

// Transport fetches the raw response body for a lookup key.
type Transport interface {
	Fetch(ctx context.Context, term string) ([]byte, error)
}

// StatusError is returned when the service answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Body)
}

type ClientConfig struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	RetryAttempts uint
	// RetryDelay is the base delay of the exponential backoff.
	RetryDelay time.Duration
}

type Client struct {
	httpClient       *resty.Client
	baseURL          string
	maxRetryAttempts uint
	retryDelay       time.Duration
}

func NewClient(config ClientConfig) *Client {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	retryDelay := config.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 100 * time.Millisecond
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "*/*")
	client.SetHeader("Accept-Language", "en-US,en;q=0.5")
	client.SetHeader("X-Requested-With", "XMLHttpRequest")
	client.SetHeader("DNT", "1")
	client.SetHeader("Referer", baseURL+"/")
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}

	return &Client{
		httpClient:       client,
		baseURL:          baseURL,
		maxRetryAttempts: config.RetryAttempts,
		retryDelay:       retryDelay,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// SourceURL returns the URL a term is looked up at.
func (client *Client) SourceURL(term string) string {
	return client.baseURL + translatePath + "?" + url.Values{"query": {term}}.Encode()
}

// Fetch implements Transport.
func (client *Client) Fetch(ctx context.Context, term string) ([]byte, error) {
	var body []byte
	if err := retry.Do(
		func() error {
			response, err := client.fetch(ctx, term)
			if err != nil {
				if ctx.Err() != nil || !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Warn("Retrying latin-words request",
				"attempt", n+1,
				"term", term,
				"error", err)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return body, nil
}

func (client *Client) fetch(ctx context.Context, term string) ([]byte, error) {
	slog.Default().Debug("latin-words request", "term", term)
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParam("query", term).
		Get(translatePath)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, &StatusError{
			StatusCode: response.StatusCode(),
			Body:       response.String(),
		}
	}
	return response.Bytes(), nil
}

// Lookup fetches and decodes the payload for a term.
func (client *Client) Lookup(ctx context.Context, term string) (latinwords.RawResponse, error) {
	body, err := client.Fetch(ctx, term)
	if err != nil {
		return latinwords.RawResponse{}, fmt.Errorf("client.Fetch > %w", err)
	}
	return DecodeResponse(body)
}

// DecodeResponse decodes a response body. A body that is not JSON is an
// error, while a JSON payload of the wrong shape is left for the parser to
// report.
func DecodeResponse(body []byte) (latinwords.RawResponse, error) {
	var response latinwords.RawResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return latinwords.RawResponse{}, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return response, nil
}

// isRetryableError reports whether a failed request may succeed when repeated:
// network failures, rate limiting and server errors.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

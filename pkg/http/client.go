package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	charsetpkg "golang.org/x/net/html/charset"
)

// Client represents an HTTP client with configuration options.
type Client struct {
	baseURL            string
	client             *http.Client
	defaultHeaders     map[string]string
	defaultContentType string
	logger             HTTPLogger
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	DefaultHeaders      map[string]string
	DefaultContentType  string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ConnectionTimeout   time.Duration
	ReadTimeout         time.Duration
	// InsecureSkipVerify disables TLS certificate verification for every request of the client.
	InsecureSkipVerify bool
	Logger             HTTPLogger
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 200
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 20
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 60 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 60 * time.Second
	}
	if opts.DefaultContentType == "" {
		opts.DefaultContentType = "application/json"
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     opts.IdleConnTimeout,
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectionTimeout,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: opts.InsecureSkipVerify, //nolint:gosec // opt-in through SSL_VERIFY=false
		},
	}

	// Redirects are never followed; a 3xx answer is reported as a StatusError.
	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		client:             client,
		defaultHeaders:     opts.DefaultHeaders,
		defaultContentType: opts.DefaultContentType,
		logger:             opts.Logger,
	}
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// URL returns the absolute URL the client would call for path and queryParams.
func (hc *Client) URL(path string, queryParams map[string]string) string {
	u := hc.buildURL(path)
	if len(queryParams) > 0 {
		u += "?" + buildQueryString(queryParams)
	}
	return u
}

// doRequest sends the request, decodes a 2xx body into successResp and any other body into errorResp.
// Every attempt is reported to the client's HTTPLogger.
func (hc *Client) doRequest(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, successResp any, errorResp any) (any, any, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestURL := hc.URL(path, queryParams)

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, nil, 0, err
	}

	for k, v := range hc.defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hc.logger.LogRequest(method, requestURL, req.Header)
	start := time.Now()

	resp, err := hc.client.Do(req)
	if err != nil {
		hc.logger.LogResponseError(method, requestURL, 0, time.Since(start), err)
		return nil, nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		hc.logger.LogResponseError(method, requestURL, resp.StatusCode, time.Since(start), err)
		return nil, nil, resp.StatusCode, err
	}
	latency := time.Since(start)

	respContentType := resp.Header.Get("Content-Type")
	if respContentType == "" {
		respContentType = hc.defaultContentType
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if successResp != nil {
			if err = hc.unmarshalResponse(bodyBytes, respContentType, successResp); err != nil {
				err = fmt.Errorf("decode response body: %w", err)
				hc.logger.LogResponseError(method, requestURL, resp.StatusCode, latency, err)
				return nil, nil, resp.StatusCode, err
			}
		}
		hc.logger.LogResponseSuccess(method, requestURL, resp.StatusCode, latency)
		return successResp, nil, resp.StatusCode, nil
	}

	statusErr := &StatusError{StatusCode: resp.StatusCode}
	hc.logger.LogResponseError(method, requestURL, resp.StatusCode, latency, statusErr)

	// Error bodies are best effort: a body that does not decode still yields the status error.
	if errorResp != nil && hc.unmarshalResponse(bodyBytes, respContentType, errorResp) == nil {
		return nil, errorResp, resp.StatusCode, statusErr
	}
	return nil, nil, resp.StatusCode, statusErr
}

// unmarshalResponse decodes a JSON body, converting it to UTF-8 first when the content type declares another charset.
// Numbers decoded into interface values are kept as json.Number so their literal text survives.
func (hc *Client) unmarshalResponse(bodyBytes []byte, contentType string, target any) error {
	var reader io.Reader = bytes.NewReader(bodyBytes)

	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if label := params["charset"]; label != "" && !strings.EqualFold(label, "utf-8") {
			converted, err := charsetpkg.NewReaderLabel(label, reader)
			if err != nil {
				return fmt.Errorf("unsupported charset %q: %w", label, err)
			}
			reader = converted
		}
	}

	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	return decoder.Decode(target)
}

// buildURL builds a normalized URL by properly handling baseURL and path
func (hc *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return hc.baseURL + path
}

// buildQueryString builds an escaped query string, sorted by key.
func buildQueryString(params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	return values.Encode()
}

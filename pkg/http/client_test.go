package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	kind   string
	url    string
	status int
	err    error
}

type recordingLogger struct {
	mutex sync.Mutex
	calls []recordedCall
}

func (l *recordingLogger) LogRequest(_, url string, _ http.Header) {
	l.record(recordedCall{kind: "request", url: url})
}

func (l *recordingLogger) LogResponseSuccess(_, url string, status int, _ time.Duration) {
	l.record(recordedCall{kind: "success", url: url, status: status})
}

func (l *recordingLogger) LogResponseError(_, url string, status int, _ time.Duration, err error) {
	l.record(recordedCall{kind: "error", url: url, status: status, err: err})
}

func (l *recordingLogger) record(call recordedCall) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.calls = append(l.calls, call)
}

type providerError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

func TestExecuteSuccess(t *testing.T) {
	var gotHeaders http.Header
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":30.50,"weather_code":3}}`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(server.URL+"/v1/", ClientOptions{
		DefaultHeaders: map[string]string{"User-Agent": "weather-app/1.0", "Accept": "application/json"},
		Logger:         logger,
	})

	successResp, errResp, status, err := client.Request().
		WithMethod(GET).
		WithPath("forecast").
		WithQueryParams(map[string]string{"latitude": "13.7563", "current": "temperature_2m,weather_code"}).
		WithSuccessResp(&map[string]any{}).
		Execute()

	require.NoError(t, err)
	assert.Nil(t, errResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "weather-app/1.0", gotHeaders.Get("User-Agent"))
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))
	assert.Equal(t, []string{"13.7563"}, gotQuery["latitude"])
	assert.Equal(t, []string{"temperature_2m,weather_code"}, gotQuery["current"])

	document := *successResp.(*map[string]any)
	current := document["current"].(map[string]any)
	assert.Equal(t, json.Number("30.50"), current["temperature_2m"])

	require.Len(t, logger.calls, 2)
	assert.Equal(t, "request", logger.calls[0].kind)
	assert.Equal(t, server.URL+"/v1/forecast?current=temperature_2m%2Cweather_code&latitude=13.7563", logger.calls[0].url)
	assert.Equal(t, "success", logger.calls[1].kind)
}

func TestExecuteStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(server.URL, ClientOptions{Logger: logger})

	successResp, errResp, status, err := client.Request().
		WithPath("/forecast").
		WithSuccessResp(&map[string]any{}).
		WithErrorResp(&providerError{}).
		Execute()

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Nil(t, successResp)
	require.NotNil(t, errResp)
	assert.Equal(t, "Latitude must be in range of -90 to 90°.", errResp.(*providerError).Reason)

	require.Len(t, logger.calls, 2)
	assert.Equal(t, "error", logger.calls[1].kind)
	assert.Equal(t, http.StatusBadRequest, logger.calls[1].status)
}

func TestExecuteUndecodableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	_, errResp, status, err := client.Request().
		WithSuccessResp(&map[string]any{}).
		WithErrorResp(&providerError{}).
		Execute()

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Nil(t, errResp)
}

func TestExecuteMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(server.URL, ClientOptions{Logger: logger})

	successResp, _, status, err := client.Request().WithSuccessResp(&map[string]any{}).Execute()

	require.Error(t, err)
	assert.Nil(t, successResp)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, logger.calls, 2)
	assert.Equal(t, "error", logger.calls[1].kind)
}

func TestExecuteConvertsDeclaredCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=iso-8859-1")
		// 0xB0 is the degree sign in Latin-1.
		_, _ = w.Write([]byte("{\"unit\":\"\xb0C\"}"))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	successResp, _, _, err := client.Request().WithSuccessResp(&map[string]any{}).Execute()

	require.NoError(t, err)
	assert.Equal(t, "°C", (*successResp.(*map[string]any))["unit"])
}

func TestExecuteDoesNotFollowRedirects(t *testing.T) {
	var targetHits int
	mux := http.NewServeMux()
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/moved", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		targetHits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":1}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(server.URL, ClientOptions{Logger: logger})

	successResp, _, status, err := client.Request().WithPath("/forecast").WithSuccessResp(&map[string]any{}).Execute()

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusMovedPermanently, statusErr.StatusCode)
	assert.Equal(t, http.StatusMovedPermanently, status)
	assert.Nil(t, successResp)
	assert.Equal(t, 0, targetHits)
	require.Len(t, logger.calls, 2)
	assert.Equal(t, "error", logger.calls[1].kind)
}

func TestExecuteNotFoundIsStatusError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	successResp, errResp, status, err := client.Request().WithSuccessResp(&map[string]any{}).Execute()

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Nil(t, successResp)
	assert.Nil(t, errResp)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestExecuteTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(baseURL, ClientOptions{Logger: logger})

	_, _, status, err := client.Request().WithSuccessResp(&map[string]any{}).Execute()

	require.Error(t, err)
	assert.Equal(t, 0, status)
	require.Len(t, logger.calls, 2)
	assert.Equal(t, "error", logger.calls[1].kind)
	assert.Equal(t, 0, logger.calls[1].status)
}

func TestExecuteTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewHttpClient(server.URL, ClientOptions{ReadTimeout: 50 * time.Millisecond})

	_, _, _, err := client.Request().WithSuccessResp(&map[string]any{}).Execute()

	require.Error(t, err)
}

func TestExecuteHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := client.Request().WithContext(ctx).WithSuccessResp(&map[string]any{}).Execute()

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTLSVerification(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	t.Run("self-signed certificate rejected when verifying", func(t *testing.T) {
		client := NewHttpClient(server.URL, ClientOptions{})

		_, _, _, err := client.Request().WithSuccessResp(&map[string]any{}).Execute()

		require.Error(t, err)
	})

	t.Run("self-signed certificate accepted when verification is off", func(t *testing.T) {
		client := NewHttpClient(server.URL, ClientOptions{InsecureSkipVerify: true})

		successResp, _, status, err := client.Request().WithSuccessResp(&map[string]any{}).Execute()

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, (*successResp.(*map[string]any))["ok"])
	})
}

func TestNewHttpClientOnlyTogglesVerification(t *testing.T) {
	verifying := NewHttpClient("https://example.com", ClientOptions{ReadTimeout: 30 * time.Second})
	insecure := NewHttpClient("https://example.com", ClientOptions{ReadTimeout: 30 * time.Second, InsecureSkipVerify: true})

	verifyingTransport := verifying.client.Transport.(*http.Transport)
	insecureTransport := insecure.client.Transport.(*http.Transport)

	assert.False(t, verifyingTransport.TLSClientConfig.InsecureSkipVerify)
	assert.True(t, insecureTransport.TLSClientConfig.InsecureSkipVerify)

	assert.Equal(t, verifying.client.Timeout, insecure.client.Timeout)
	assert.Equal(t, verifyingTransport.MaxIdleConns, insecureTransport.MaxIdleConns)
	assert.Equal(t, verifyingTransport.MaxIdleConnsPerHost, insecureTransport.MaxIdleConnsPerHost)
	assert.Equal(t, verifying.baseURL, insecure.baseURL)
	assert.Equal(t, verifying.defaultContentType, insecure.defaultContentType)
}

func TestRequestValidation(t *testing.T) {
	client := NewHttpClient("http://localhost", ClientOptions{})

	_, _, _, err := client.Request().WithMethod("").Execute()
	assert.EqualError(t, err, "method is required")

	_, _, _, err = client.Request().WithPath("").Execute()
	assert.EqualError(t, err, "path is required")

	_, _, _, err = NewHttpClientRequest(nil).Execute()
	assert.EqualError(t, err, "client is required")
}

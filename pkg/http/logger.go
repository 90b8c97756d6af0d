package http

import (
	"net/http"
	"time"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers http.Header)

	// LogResponseSuccess is called after a 2xx response body has been read and decoded
	LogResponseSuccess(method, url string, httpStatus int, latency time.Duration)

	// LogResponseError is called for transport failures, non-2xx statuses and undecodable bodies.
	// httpStatus is 0 when no response was received.
	LogResponseError(method, url string, httpStatus int, latency time.Duration, err error)
}

type nopLogger struct{}

func (nopLogger) LogRequest(string, string, http.Header) {}

func (nopLogger) LogResponseSuccess(string, string, int, time.Duration) {}

func (nopLogger) LogResponseError(string, string, int, time.Duration, error) {}

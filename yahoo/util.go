package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"go.uber.org/zap"
)

// loggingTransport logs every HTTP exchange at debug level.
type loggingTransport struct {
	base   http.RoundTripper
	logger *zap.Logger
}

// RoundTrip implements the http.RoundTripper interface.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Debug("http error", zap.String("method", req.Method), zap.String("url", req.URL.Host+req.URL.Path), zap.Error(err))
		return nil, err
	}
	t.logger.Debug("http", zap.String("method", req.Method), zap.String("url", req.URL.Host+req.URL.Path), zap.String("status", resp.Status))
	return resp, nil
}

// jwget performs an HTTP GET request to the given address and unmarshals the
// JSON response body into the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr, userAgent string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}

// lookup evaluates a JSONPath against an untyped JSON value. Missing members,
// out of range indexes and null values are all reported as not found.
func lookup(path string, jobj any) (any, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil || jval == nil {
		return nil, false
	}
	return jval, true
}

// lookupNumber is lookup restricted to JSON numbers.
func lookupNumber(path string, jobj any) (float64, bool) {
	jval, ok := lookup(path, jobj)
	if !ok {
		return 0, false
	}
	val, ok := jval.(float64)
	return val, ok
}

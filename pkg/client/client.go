// Package client implements admin.Store over the REST collection API served
// by the gateway.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/shopadmin/pkg/admin"
	"go.uber.org/zap"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is a 404 from the collection API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Store talks to <baseURL>/api/<resource>.
type Store[T any, F any] struct {
	schema  *admin.Schema[T, F]
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New returns a Store for schema. A nil httpClient gets a client with a 30s
// timeout; a nil logger discards.
func New[T any, F any](schema *admin.Schema[T, F], baseURL string, httpClient *http.Client, logger *zap.Logger) *Store[T, F] {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store[T, F]{
		schema:  schema,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger.With(zap.String("resource", schema.Resource)),
	}
}

func (s *Store[T, F]) collectionURL() string {
	return s.baseURL + "/api/" + s.schema.Resource
}

func (s *Store[T, F]) recordURL(id int64) string {
	return s.collectionURL() + "/" + strconv.FormatInt(id, 10)
}

// List accepts either a bare array or an object holding the array under the
// schema's list key.
func (s *Store[T, F]) List(ctx context.Context) ([]T, error) {
	body, err := s.do(ctx, http.MethodGet, s.collectionURL(), nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []T
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", s.schema.Resource, err)
		}
		return records, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.schema.Resource, err)
	}
	raw, ok := envelope[s.schema.Key()]
	if !ok {
		return nil, fmt.Errorf("failed to decode %s: missing %q field", s.schema.Resource, s.schema.Key())
	}
	records := []T{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.schema.Resource, err)
	}
	return records, nil
}

// Get fetches one record. A missing record is a *StatusError for which
// IsNotFound is true.
func (s *Store[T, F]) Get(ctx context.Context, id int64) (T, error) {
	var rec T
	body, err := s.do(ctx, http.MethodGet, s.recordURL(id), nil)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(body, &rec); err != nil {
		return rec, fmt.Errorf("failed to decode %s: %w", s.schema.Singular, err)
	}
	return rec, nil
}

func (s *Store[T, F]) Create(ctx context.Context, form F) (T, error) {
	return s.send(ctx, http.MethodPost, s.collectionURL(), form)
}

func (s *Store[T, F]) Update(ctx context.Context, id int64, form F) (T, error) {
	return s.send(ctx, http.MethodPut, s.recordURL(id), form)
}

func (s *Store[T, F]) Delete(ctx context.Context, id int64) error {
	_, err := s.do(ctx, http.MethodDelete, s.recordURL(id), nil)
	return err
}

func (s *Store[T, F]) send(ctx context.Context, method, url string, form F) (T, error) {
	var rec T
	payload, err := json.Marshal(form)
	if err != nil {
		return rec, fmt.Errorf("failed to encode %s form: %w", s.schema.Singular, err)
	}
	body, err := s.do(ctx, method, url, payload)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(body, &rec); err != nil {
		return rec, fmt.Errorf("failed to decode %s: %w", s.schema.Singular, err)
	}
	return rec, nil
}

func (s *Store[T, F]) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := s.http.Do(req)
	if err != nil {
		s.logger.Warn("Request failed", zap.String("method", method), zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	s.logger.Debug("Request completed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode}
		var msg struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &msg) == nil {
			se.Message = msg.Error
		}
		return nil, se
	}
	return body, nil
}

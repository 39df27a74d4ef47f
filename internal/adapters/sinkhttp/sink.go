// Package sinkhttp implements ports.Sink over HTTP.
//
// Each record is posted as a JSON document to the backend's log endpoint.
// The sink serializes nothing across calls and holds no record state, so it
// is safe for concurrent use as long as the underlying HTTP client is.
package sinkhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/roslog/rerunros/internal/domain"
	"github.com/roslog/rerunros/internal/ports"
	"github.com/roslog/rerunros/pkg/log"
)

const logEndpoint = "/v1/log"

// Sink posts converted records to the logging backend.
type Sink struct {
	client  ports.HTTPClient
	baseURL string
	authKey string
	appID   string
	logger  log.Logger
}

// New creates an HTTP sink. baseURL must not end with a slash; authKey may
// be empty when the backend does not require authentication.
func New(client ports.HTTPClient, baseURL, authKey, appID string, logger log.Logger) *Sink {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Sink{
		client:  client,
		baseURL: baseURL,
		authKey: authKey,
		appID:   appID,
		logger:  logger,
	}
}

// recordBody is the wire form of one record.
type recordBody struct {
	EntityPath string        `json:"entity_path"`
	Stamp      time.Time     `json:"stamp"`
	Kind       string        `json:"kind"`
	Data       domain.Entity `json:"data"`
}

// Log posts one record. A non-2xx response is a delivery failure; the
// caller drops the record, so the body is read only for the error message.
func (s *Sink) Log(ctx context.Context, entityPath string, stamp time.Time, entity domain.Entity) error {
	body, err := json.Marshal(recordBody{
		EntityPath: entityPath,
		Stamp:      stamp.UTC(),
		Kind:       entity.Kind(),
		Data:       entity,
	})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	url := s.baseURL + logEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.authKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.authKey)
	}
	req.Header.Set("X-Rerun-Application-Id", s.appID)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

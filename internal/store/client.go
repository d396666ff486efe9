// Package store implements the client for the remote JSON document store.
// The store speaks Firebase-RTDB-style REST: GET /{kind}.json returns a
// mapping of generated keys to record bodies, POST /{kind}.json creates a
// record and answers {"name": "<key>"}, PUT and DELETE address single
// records at /{kind}/{id}.json.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"piscopy/pkg/config"

	"go.uber.org/zap"
)

// Resource kinds known to the store.
const (
	KindPhotos    = "photos"
	KindDocuments = "documents"
	KindUsers     = "users"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(cfg *config.StoreConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// List fetches every record of a kind. An empty store answers a JSON null
// body, which is returned as an empty map, not an error.
func (c *Client) List(ctx context.Context, kind string) (map[string]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.collectionURL(kind), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}

	var records map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode %s listing: %w", kind, err)
	}
	if records == nil {
		records = map[string]json.RawMessage{}
	}

	return records, nil
}

// Create submits a new record body and returns the store-assigned key.
func (c *Client) Create(ctx context.Context, kind string, record any) (string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.collectionURL(kind), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to create %s record: %w", kind, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", fmt.Errorf("failed to create %s record: %w", kind, err)
	}

	var result struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode create response: %w", err)
	}
	if result.Name == "" {
		return "", fmt.Errorf("store returned no key for new %s record", kind)
	}

	c.logger.Debug("Record created", zap.String("kind", kind), zap.String("id", result.Name))
	return result.Name, nil
}

// Update overwrites the record at id with a full replacement body.
// Partial updates are not supported.
func (c *Client) Update(ctx context.Context, kind, id string, record any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.recordURL(kind, id), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", kind, id, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", kind, id, err)
	}

	return nil
}

// Delete removes the record at id permanently.
func (c *Client) Delete(ctx context.Context, kind, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.recordURL(kind, id), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", kind, id, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", kind, id, err)
	}

	return nil
}

func (c *Client) collectionURL(kind string) string {
	return c.baseURL + "/" + kind + ".json"
}

func (c *Client) recordURL(kind, id string) string {
	return c.baseURL + "/" + kind + "/" + id + ".json"
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("store returned status %d", resp.StatusCode)
}

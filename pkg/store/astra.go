package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xhad/f1gpt/internal/models"
)

const astraAPIPath = "/api/json/v1"

// AstraConfig holds the static credentials for a Data API database.
type AstraConfig struct {
	Endpoint   string // https://<db-id>-<region>.apps.astra.datastax.com
	Namespace  string
	Token      string
	HTTPClient *http.Client
}

// APIError is a failed Data API command, either a non-2xx status or a 2xx
// response that carries an errors array.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("data api error (status %d, %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("data api error (status %d): %s", e.StatusCode, e.Message)
}

// AstraStore talks to the Data API's JSON command endpoint.
type AstraStore struct {
	config  AstraConfig
	baseURL string
	client  *http.Client
}

func NewAstraStore(config AstraConfig) (*AstraStore, error) {
	if config.Endpoint == "" || config.Namespace == "" || config.Token == "" {
		return nil, errors.New("astra store: endpoint, namespace and token are required")
	}
	if _, err := url.Parse(config.Endpoint); err != nil {
		return nil, fmt.Errorf("astra store: invalid endpoint: %w", err)
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &AstraStore{
		config:  config,
		baseURL: strings.TrimRight(config.Endpoint, "/") + astraAPIPath + "/" + url.PathEscape(config.Namespace),
		client:  client,
	}, nil
}

type commandStatus struct {
	OK          int   `json:"ok,omitempty"`
	InsertedIDs []any `json:"insertedIds,omitempty"`
}

type commandError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

type commandResponse struct {
	Status commandStatus  `json:"status"`
	Errors []commandError `json:"errors"`
}

// CreateCollection sends createCollection with the vector options. An
// existing collection with the same options succeeds, different options fail.
func (s *AstraStore) CreateCollection(ctx context.Context, spec models.CollectionSpec) error {
	body := map[string]any{
		"createCollection": map[string]any{
			"name": spec.Name,
			"options": map[string]any{
				"vector": map[string]any{
					"dimension": spec.Dimension,
					"metric":    string(spec.Metric),
				},
			},
		},
	}

	resp, err := s.command(ctx, s.baseURL, body)
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", spec.Name, err)
	}
	if resp.Status.OK != 1 {
		return fmt.Errorf("failed to create collection %s: status not ok", spec.Name)
	}

	return nil
}

// Insert writes one document holding the vector under "$vector" and the chunk
// under "text". It returns the id the server assigned.
func (s *AstraStore) Insert(ctx context.Context, collection string, record models.Record) (string, error) {
	body := map[string]any{
		"insertOne": map[string]any{
			"document": map[string]any{
				"$vector": record.Vector,
				"text":    record.Text,
			},
		},
	}

	resp, err := s.command(ctx, s.baseURL+"/"+url.PathEscape(collection), body)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}
	if len(resp.Status.InsertedIDs) == 0 {
		return "", errors.New("failed to insert document: no id returned")
	}

	return fmt.Sprint(resp.Status.InsertedIDs[0]), nil
}

func (s *AstraStore) Close() {
	s.client.CloseIdleConnections()
}

func (s *AstraStore) command(ctx context.Context, endpoint string, payload any) (*commandResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Token", s.config.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	var resp commandResponse
	decodeErr := json.Unmarshal(raw, &resp)

	if len(resp.Errors) > 0 {
		return nil, &APIError{
			StatusCode: res.StatusCode,
			Code:       resp.Errors[0].ErrorCode,
			Message:    resp.Errors[0].Message,
		}
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: res.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
		}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("error decoding response: %w", decodeErr)
	}

	return &resp, nil
}

// Package client talks to the journal REST API. It implements
// tracker.Store so the command line tool can drive the state container.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/config"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/dto"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/response"
)

const apiPrefix = "/api/v1"

// APIError error envelope returned by the server
type APIError struct {
	Status  int
	Code    int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error %d (%d): %s: %s", e.Code, e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d (%d): %s", e.Code, e.Status, e.Message)
}

// Unwrap maps the envelope code onto the shared error families so callers
// can use errors.Is(err, apperrors.ErrNotFound) on both sides of the wire.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case response.CodeStageNotFound, response.CodeNoteNotFound:
		return apperrors.ErrNotFound
	case response.CodeBadParams, response.CodeStageInvalid, response.CodeNoteInvalid,
		response.CodeEvalInvalid, response.CodeEvalStageAbsent, response.CodeBodyTooLarge:
		return apperrors.ErrValidation
	}
	return apperrors.ErrStore
}

// Client HTTP client of /api/v1
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New builds a client from the CLI settings
func New(cfg *config.ClientConfig, logger *zap.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("client: base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("client: invalid base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(zap.String("component", "api_client")),
	}, nil
}

// ────────────────────── Stages ──────────────────────

func (c *Client) ListStages(ctx context.Context) ([]dto.StageResponse, error) {
	var out listData[dto.StageResponse]
	err := c.do(ctx, http.MethodGet, "/stages", nil, &out)
	return out.List, err
}

func (c *Client) CreateStage(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error) {
	var out dto.StageResponse
	if err := c.do(ctx, http.MethodPost, "/stages", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStage(ctx context.Context, id uint, req *dto.UpdateStageRequest) (*dto.StageResponse, error) {
	var out dto.StageResponse
	if err := c.do(ctx, http.MethodPut, "/stages/"+idPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteStage(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/stages/"+idPath(id), nil, nil)
}

// ────────────────────── Notes ──────────────────────

func (c *Client) ListNotes(ctx context.Context) ([]dto.NoteResponse, error) {
	var out listData[dto.NoteResponse]
	err := c.do(ctx, http.MethodGet, "/notes", nil, &out)
	return out.List, err
}

func (c *Client) SaveNote(ctx context.Context, req *dto.SaveNoteRequest) (*dto.NoteResponse, error) {
	var out dto.NoteResponse
	if err := c.do(ctx, http.MethodPost, "/notes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNote(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+idPath(id), nil, nil)
}

// ────────────────────── Evaluations ──────────────────────

func (c *Client) ListEvaluations(ctx context.Context) ([]dto.EvaluationResponse, error) {
	var out listData[dto.EvaluationResponse]
	err := c.do(ctx, http.MethodGet, "/evaluations", nil, &out)
	return out.List, err
}

func (c *Client) CreateEvaluation(ctx context.Context, req *dto.CreateEvaluationRequest) (*dto.EvaluationResponse, error) {
	var out dto.EvaluationResponse
	if err := c.do(ctx, http.MethodPost, "/evaluations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ────────────────────── transport ──────────────────────

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details string          `json:"details"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Store(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Store(fmt.Errorf("%s %s: read body: %w", method, path, err))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Code: response.CodeInternal, Message: http.StatusText(resp.StatusCode)}
		}
		return apperrors.Store(fmt.Errorf("%s %s: decode envelope: %w", method, path, err))
	}
	if resp.StatusCode >= http.StatusBadRequest || env.Code != response.CodeOK {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message, Details: env.Details}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.Store(fmt.Errorf("%s %s: decode data: %w", method, path, err))
	}
	return nil
}

// listData payload of the list endpoints
type listData[T any] struct {
	List []T `json:"list"`
}

func idPath(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// IsAPIError reports whether err carries a server envelope with the given code
func IsAPIError(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

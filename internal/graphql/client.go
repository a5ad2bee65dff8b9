package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Transport envia una operacion GraphQL con un bearer token.
type Transport interface {
	Do(ctx context.Context, operation string, variables map[string]any, bearerToken string) (json.RawMessage, error)
}

// TransportError se devuelve ante cualquier status distinto de 200.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("graphql http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Unauthorized indica un rechazo de la credencial (401/403).
func (e *TransportError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

var (
	ErrEmptyOperation  = errors.New("graphql empty operation")
	ErrInvalidResponse = errors.New("graphql invalid response")
)

// DecodeError indica un 200 cuyo cuerpo no es el JSON esperado.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidResponse, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrInvalidResponse, e.Err}
}

// Client implementa Transport contra un endpoint fijo.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewClient construye un cliente HTTP apuntando al endpoint GraphQL.
func NewClient(endpoint string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		client:   httpClient,
		logger:   logger,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) Do(ctx context.Context, operation string, variables map[string]any, bearerToken string) (json.RawMessage, error) {
	if strings.TrimSpace(operation) == "" {
		return nil, ErrEmptyOperation
	}
	if variables == nil {
		variables = map[string]any{}
	}

	bodyBytes, err := json.Marshal(request{Query: operation, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("Content-Type", "application/json")

	name := OperationName(operation)
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("graphql request failed", zap.String("operation", name), zap.Error(err))
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("graphql error status",
			zap.String("operation", name),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if !json.Valid(respBody) {
		c.logger.Warn("graphql invalid body", zap.String("operation", name))
		return nil, &DecodeError{Body: string(respBody), Err: errors.New("body is not valid json")}
	}

	c.logger.Info("graphql request", zap.String("operation", name), zap.Int("status", resp.StatusCode))
	return json.RawMessage(respBody), nil
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Response es la envoltura estandar de una respuesta GraphQL.
type Response[T any] struct {
	Data   *T      `json:"data"`
	Errors []Error `json:"errors,omitempty"`
}

type Error struct {
	Message string `json:"message"`
}

// Decode parsea el cuerpo crudo sobre la envoltura data/errors.
func Decode[T any](raw json.RawMessage) (Response[T], error) {
	var out Response[T]
	if err := json.Unmarshal(raw, &out); err != nil {
		return Response[T]{}, &DecodeError{Body: string(raw), Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	return out, nil
}

// ErrorMessages devuelve los mensajes del arreglo errors, si existen.
func ErrorMessages(errs []Error) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		if msg := strings.TrimSpace(e.Message); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

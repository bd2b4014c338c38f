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

	"github.com/serenity-studio/yoga-scheduler/internal/apperr"
	"github.com/serenity-studio/yoga-scheduler/internal/models"
)

// ErrRemoteUnavailable marks a transport-level failure: no response, or a
// response that carries no application error. The fallback decorator
// retries such calls locally; application errors pass through unchanged.
var ErrRemoteUnavailable = errors.New("remote backend unavailable")

// Remote talks to the reservation API over HTTP.
type Remote struct {
	baseURL string
	client  *http.Client
}

func NewRemote(baseURL string, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// envelope is the API's response shape: {status, data} on success,
// {status:"error", code, message} on application errors.
type envelope struct {
	Status     string          `json:"status"`
	Code       string          `json:"code,omitempty"`
	Message    string          `json:"message,omitempty"`
	Violations []string        `json:"violations,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// --------------------------------------------------
// Operations
// --------------------------------------------------

func (b *Remote) Create(ctx context.Context, r *models.Reservation) error {
	body, err := json.Marshal(r)
	if err != nil {
		return apperr.Storage("encode", err)
	}

	env, err := b.do(ctx, http.MethodPost, "/reservations", bytes.NewReader(body))
	if err != nil {
		return err
	}

	// The server assigns id/createdAt; adopt its stored record.
	var stored models.Reservation
	if err := json.Unmarshal(env.Data, &stored); err != nil {
		return fmt.Errorf("%w: malformed create response: %v", ErrRemoteUnavailable, err)
	}
	*r = stored
	return nil
}

func (b *Remote) QueryByEmail(ctx context.Context, email string) ([]models.Reservation, error) {
	path := "/reservations?email=" + url.QueryEscape(email)
	env, err := b.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out []models.Reservation
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("%w: malformed query response: %v", ErrRemoteUnavailable, err)
	}
	return out, nil
}

func (b *Remote) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	env, err := b.do(ctx, http.MethodDelete, "/reservations/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var cancelled models.Reservation
	if err := json.Unmarshal(env.Data, &cancelled); err != nil {
		return nil, fmt.Errorf("%w: malformed cancel response: %v", ErrRemoteUnavailable, err)
	}
	return &cancelled, nil
}

func (b *Remote) List(ctx context.Context) ([]models.Reservation, error) {
	env, err := b.do(ctx, http.MethodGet, "/reservations", nil)
	if err != nil {
		return nil, err
	}

	var out []models.Reservation
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("%w: malformed list response: %v", ErrRemoteUnavailable, err)
	}
	return out, nil
}

// --------------------------------------------------
// Transport
// --------------------------------------------------

func (b *Remote) do(ctx context.Context, method, path string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if decodeErr != nil {
			return nil, fmt.Errorf("%w: malformed response: %v", ErrRemoteUnavailable, decodeErr)
		}
		return &env, nil
	}

	// An application error response is a real answer, not an outage.
	if decodeErr == nil && env.Status == "error" {
		if appErr := apperr.FromCode(env.Code, env.Message, env.Violations); appErr != nil {
			return nil, appErr
		}
	}

	return nil, fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
}

var _ Backend = (*Remote)(nil)

package persistence

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const maxDocumentSize = 1 << 20

// RemoteAdapter talks to the key-value HTTP API at {baseURL}/api/data/{key}.
type RemoteAdapter struct {
	client  *http.Client
	baseURL string
	apiKey  string
	key     string
}

func NewRemoteAdapter(client *http.Client, baseURL, apiKey, key string) *RemoteAdapter {
	if client == nil {
		client = http.DefaultClient
	}

	return &RemoteAdapter{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		key:     key,
	}
}

func (that *RemoteAdapter) Save(ctx context.Context, state *entity.GameState) error {
	body, err := Encode(state)
	if err != nil {
		return err
	}

	resp, err := that.do(ctx, http.MethodPut, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (that *RemoteAdapter) Load(ctx context.Context) (*entity.GameState, error) {
	resp, err := that.do(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err = checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", apperror.ErrPersistenceUnavailable, err)
	}

	return Decode(data)
}

func (that *RemoteAdapter) Delete(ctx context.Context) error {
	resp, err := that.do(ctx, http.MethodDelete, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (that *RemoteAdapter) endpoint() (string, error) {
	endpoint, err := url.JoinPath(that.baseURL, "api", "data", that.key)
	if err != nil {
		return "", fmt.Errorf("%w: bad api url: %w", apperror.ErrPersistenceUnavailable, err)
	}

	return endpoint + "?" + url.Values{"api-key": {that.apiKey}}.Encode(), nil
}

func (that *RemoteAdapter) do(ctx context.Context, method string, body io.Reader) (*http.Response, error) {
	endpoint, err := that.endpoint()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", apperror.ErrPersistenceUnavailable, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, err)
	}

	return resp, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return apperror.ErrKeyNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, apperror.ErrUnauthorized)
	default:
		return fmt.Errorf("%w: HTTP status %d", apperror.ErrPersistenceUnavailable, resp.StatusCode)
	}
}

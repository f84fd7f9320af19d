package rubikit

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const methodGetUpdates = "getUpdates"

// envelope is the common response wrapper of every Bot API method.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// UpdatesPage is one getUpdates response.
type UpdatesPage struct {
	Updates      []json.RawMessage `json:"updates"`
	NextOffsetID string            `json:"next_offset_id"`
}

// UpdateFetcher fetches pages of raw updates starting at offsetID.
// An empty offsetID asks for whatever the server currently holds.
type UpdateFetcher interface {
	GetUpdates(ctx context.Context, offsetID string, limit int) (*UpdatesPage, error)
}

// client performs Bot API calls over HTTP.
type client struct {
	http    *resty.Client
	log     *zap.Logger
	retries int
}

func newClient(cfg *Config, log *zap.Logger) *client {
	base := strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.Token
	rc := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "rubikit ("+cfg.Platform+")").
		SetLogger(log.Sugar())

	return &client{
		http:    rc,
		log:     log,
		retries: cfg.SendRetries,
	}
}

// call invokes method with payload and decodes the envelope's data into out.
// out may be nil. Outbound methods are retried on temporary failures.
func (c *client) call(ctx context.Context, method string, payload, out any) error {
	if method == methodGetUpdates || c.retries <= 0 {
		return c.do(ctx, method, payload, out)
	}
	return retry(ctx, c.retries, func() error {
		return c.do(ctx, method, payload, out)
	})
}

func (c *client) do(ctx context.Context, method string, payload, out any) error {
	if payload == nil {
		payload = struct{}{}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(method)
	if err != nil {
		return errors.Wrap(err, method)
	}

	if !resp.IsSuccess() {
		return &APIError{
			Method:     method,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}

	if method != methodGetUpdates {
		c.log.Debug("api response", zap.String("method", method), zap.ByteString("body", resp.Body()))
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return errors.Wrapf(err, "%s: decode response", method)
	}
	if env.Status != "" && env.Status != "OK" {
		return &APIError{
			Method:     method,
			StatusCode: resp.StatusCode(),
			Status:     env.Status,
			Body:       resp.String(),
		}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrapf(err, "%s: decode data", method)
	}
	return nil
}

// GetUpdates fetches the next page of updates.
func (c *client) GetUpdates(ctx context.Context, offsetID string, limit int) (*UpdatesPage, error) {
	req := struct {
		OffsetID string `json:"offset_id,omitempty"`
		Limit    int    `json:"limit,omitempty"`
	}{
		OffsetID: offsetID,
		Limit:    limit,
	}

	var page UpdatesPage
	if err := c.call(ctx, methodGetUpdates, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

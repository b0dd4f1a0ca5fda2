// Package restclient is the shared outbound JSON-over-HTTP client built on
// the hertz client.
package restclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

var ErrStatus = errors.New("unexpected status")

// StatusError carries a non-2xx reply. Body is truncated for logs.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d: %s", ErrStatus.Error(), e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}

type Client struct {
	hc *client.Client
}

// New builds a client on the standard network library so https endpoints
// work. dialTimeout bounds connection setup only.
func New(dialTimeout time.Duration) (*Client, error) {
	opts := []config.ClientOption{
		client.WithDialer(standard.NewDialer()),
		client.WithTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12}),
	}
	if dialTimeout > 0 {
		opts = append(opts, client.WithDialTimeout(dialTimeout))
	}
	hc, err := client.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	return &Client{hc: hc}, nil
}

// DoJSON sends in as a JSON body (nil sends none) and decodes a 2xx reply
// into out. The context deadline, if any, bounds the whole exchange.
func (c *Client) DoJSON(ctx context.Context, method, url string, headers map[string]string, in, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte(consts.MIMEApplicationJSON))
		req.SetBody(payload)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.hc.DoDeadline(ctx, req, resp, deadline)
	} else {
		err = c.hc.Do(ctx, req, resp)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("request failed: %w", ctxErr)
		}
		return fmt.Errorf("request failed: %w", err)
	}

	code := resp.StatusCode()
	body := resp.Body()
	if code < 200 || code >= 300 {
		return &StatusError{Code: code, Body: truncate(string(body), 512)}
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

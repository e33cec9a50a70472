// Package commerce bridges the storefront to the remote commerce platform.
// The platform owns all durable state (catalog, orders, payments, customer
// records); this client is a thin mapping layer over its loose envelope. It
// never retries: a failed call surfaces immediately and the caller decides
// what the user sees.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/omega-wallet/storefront-api/pkg/config"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

// Client calls the commerce platform REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logg    *logger.Logger
}

// NewClient validates the platform location and wires the HTTP transport.
// The transport is injected so callers control timeouts and tests can stub
// the wire.
func NewClient(cfg config.CommerceConfig, httpClient *http.Client, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeConfigMissing, "commerce base url is not configured")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logg:    logg,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build commerce request")
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode commerce request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build commerce request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do runs the request and unwraps the platform envelope. Transport failures
// and rejections map to distinct codes so the API layer can answer 502 with
// the right public message.
func (c *Client) do(req *http.Request, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		if c.logg != nil {
			c.logg.Warn(req.Context(), "commerce platform unreachable")
		}
		return pkgerrors.Wrap(pkgerrors.CodeNetworkFailure, err, "commerce platform unreachable")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetworkFailure, err, "read commerce response")
	}

	var envelope types.CommerceEnvelope
	decodeErr := json.Unmarshal(body, &envelope)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		message := strings.TrimSpace(envelope.Message)
		if decodeErr != nil || message == "" {
			message = fmt.Sprintf("commerce platform answered %d", res.StatusCode)
		}
		return pkgerrors.New(pkgerrors.CodeRemoteRejected, message).
			WithDetails(map[string]any{"status": res.StatusCode})
	}
	if decodeErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeRemoteRejected, decodeErr, "malformed commerce response")
	}
	if !envelope.Success {
		message := strings.TrimSpace(envelope.Message)
		if message == "" {
			message = "commerce platform rejected the request"
		}
		return pkgerrors.New(pkgerrors.CodeRemoteRejected, message)
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeRemoteRejected, err, "decode commerce payload")
	}
	return nil
}

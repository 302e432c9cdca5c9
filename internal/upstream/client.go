// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/callboard/internal/config"
	"github.com/tomtom215/callboard/internal/logging"
	"github.com/tomtom215/callboard/internal/metrics"
	"github.com/tomtom215/callboard/internal/models"
)

// Fetcher retrieves one raw report page.
type Fetcher interface {
	FetchPage(ctx context.Context, req models.PageRequest) (any, error)
}

// Client handles communication with the reporting API.
//
// Thread Safety: Safe for concurrent use. Each call creates its own request.
type Client struct {
	baseURL      string
	tenantHeader string
	cursorParam  string
	userAgent    string
	creds        CredentialProvider
	client       *http.Client
}

// NewClient creates a reporting API client. The HTTP client (and therefore
// the TLS trust settings) comes from the credential provider.
func NewClient(cfg *config.UpstreamConfig, creds CredentialProvider) *Client {
	httpClient := creds.HTTPClient()
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.URL, "/"),
		tenantHeader: cfg.TenantHeader,
		cursorParam:  cfg.CursorParam,
		userAgent:    cfg.UserAgent,
		creds:        creds,
		client:       httpClient,
	}
}

// FetchPage performs one GET for the requested page and returns the decoded
// body. An empty body decodes to nil.
func (c *Client) FetchPage(ctx context.Context, req models.PageRequest) (any, error) {
	path := req.Report.Path
	start := time.Now()

	body, err := c.fetch(ctx, req)
	metrics.RecordUpstreamPage(req.Report.Kind.String(), time.Since(start), err)

	if err != nil {
		var te *TransportError
		if !errors.As(err, &te) {
			err = &TransportError{Path: path, Err: err}
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, req models.PageRequest) (any, error) {
	path := req.Report.Path

	token, err := c.creds.Token(ctx, req.Tenant)
	if err != nil {
		return nil, &TransportError{Path: path, Message: "obtain credential", Err: err}
	}

	reqURL := c.baseURL + path + "?" + c.query(req).Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &TransportError{Path: path, Message: "create request", Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")
	if req.Tenant != "" {
		httpReq.Header.Set(c.tenantHeader, req.Tenant)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	logging.Ctx(ctx).Debug().
		Str("report", req.Report.Kind.String()).
		Bool("has_cursor", req.Cursor != "").
		Int("limit", req.Limit).
		Msg("Fetching report page")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Path: path, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(readBodyForError(resp.Body)),
		}
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	var body any
	if err := decoder.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &TransportError{Path: path, StatusCode: 0, Message: "decode response", Err: err}
	}
	return body, nil
}

// query builds the page-level query parameters.
func (c *Client) query(req models.PageRequest) url.Values {
	q := url.Values{}
	if req.Range != nil {
		q.Set("startDate", strconv.FormatInt(req.Range.Start, 10))
		q.Set("endDate", strconv.FormatInt(req.Range.End, 10))
	}
	if len(req.Report.Fields) > 0 {
		q.Set("fields", strings.Join(req.Report.Fields, ","))
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Cursor != "" {
		q.Set(c.cursorParam, req.Cursor)
	}
	return q
}

// String identifies the client in logs.
func (c *Client) String() string {
	return fmt.Sprintf("upstream(%s)", c.baseURL)
}

// Package simpledesktops provides functionality for interacting with the Simple Desktops API
package simpledesktops

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"git.asdf.cafe/abs3nt/simpledesktop/constants"
	"git.asdf.cafe/abs3nt/simpledesktop/errors"
)

// Client talks to the desktops catalog. HC has no timeout, a hung request
// blocks the caller until the transport gives up.
type Client struct {
	BaseURL string
	HC      *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the public catalog endpoint
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL: constants.CatalogURL,
		HC: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        constants.MaxIdleConns,
				MaxIdleConnsPerHost: constants.MaxIdleConnsPerHost,
				IdleConnTimeout:     constants.IdleConnTimeout * time.Second,
			},
		},
		logger: logger,
	}
}

// PageURL returns the URL of the single-entry page at offset
func (c *Client) PageURL(offset uint32) string {
	return c.BaseURL + "&offset=" + strconv.FormatUint(uint64(offset), 10)
}

// FetchPage retrieves and decodes the catalog page at offset.
func (c *Client) FetchPage(ctx context.Context, offset uint32) (*CatalogPage, error) {
	op := fmt.Sprintf("fetch catalog page %d", offset)
	c.logger.Debug("Making API request to simpledesktops", "offset", offset)

	resp, err := c.get(ctx, c.PageURL(offset))
	if err != nil {
		return nil, errors.Request(op, err)
	}

	out := &CatalogPage{}
	if err := processResponse(op, resp, out); err != nil {
		return nil, err
	}
	c.logger.Debug("API request successful", "offset", offset, "entries", len(out.Entries), "total_count", out.Metadata.TotalCount)
	return out, nil
}

// TotalCount returns the catalog size reported with the first page
func (c *Client) TotalCount(ctx context.Context) (uint32, error) {
	page, err := c.FetchPage(ctx, 0)
	if err != nil {
		return 0, err
	}
	return page.Metadata.TotalCount, nil
}

// FetchImage streams the image at url into w and returns the bytes written.
func (c *Client) FetchImage(ctx context.Context, url string, w io.Writer) (int64, error) {
	op := "download " + url
	resp, err := c.get(ctx, url)
	if err != nil {
		return 0, errors.Request(op, err)
	}
	defer resp.Body.Close()

	if size := resp.ContentLength; size > 0 {
		c.logger.Debug("Starting download", "url", url, "size_kb", fmt.Sprintf("%.1f", float64(size)/1024))
	}

	tw := &trackingWriter{w: w}
	written, err := io.Copy(tw, resp.Body)
	if err != nil {
		if tw.err != nil {
			return written, errors.IO(op, tw.err)
		}
		return written, errors.Request(op, fmt.Errorf("%w: %v", errors.ErrDownloadFailed, err))
	}
	return written, nil
}

func processResponse(op string, resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	byt, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Request(op, fmt.Errorf("failed to read response body: %w", err))
	}

	if err := json.Unmarshal(byt, out); err != nil {
		return errors.Deserialization(op, err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", constants.UserAgent)

	resp, err := c.HC.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, errors.NewAPIError(url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}

// trackingWriter remembers write failures so they are not reported as network errors.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}

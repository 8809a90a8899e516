// Package api is the typed HTTP client for the document service: the
// tree, semantic search, per-document detail, and the per-format
// extraction endpoints. Every JSON response arrives wrapped in a
// {success, data, error} envelope; success=false surfaces as
// *ServerError and transport failures as *NetworkError, so callers can
// classify with errors.As at the action boundary.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"docpane/internal/tree"
)

// maxMediaBytes bounds raw media downloads so one oversized asset
// cannot exhaust memory.
const maxMediaBytes = 32 << 20

// Client consumes the document service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the service at baseURL. The timeout
// bounds every individual request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Tree fetches the full document hierarchy.
func (c *Client) Tree(ctx context.Context) ([]tree.Node, error) {
	var nodes []tree.Node
	if err := c.getJSON(ctx, "load tree", "/documents/tree", &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Search posts a ranking query. A non-nil documentID narrows the
// search to that document. An empty result slice is a valid outcome;
// callers decide whether it is ErrEmptyResult.
func (c *Client) Search(ctx context.Context, query string, topK int, documentID *int) ([]SearchResult, error) {
	body := struct {
		Query      string `json:"query"`
		TopK       int    `json:"top_k"`
		DocumentID *int   `json:"document_id,omitempty"`
	}{Query: query, TopK: topK, DocumentID: documentID}

	var data struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.postJSON(ctx, "search", "/search", body, &data); err != nil {
		return nil, err
	}
	return data.Results, nil
}

// Detail fetches per-document metadata.
func (c *Client) Detail(ctx context.Context, id int) (*DocumentDetail, error) {
	var d DocumentDetail
	if err := c.getJSON(ctx, "load detail", fmt.Sprintf("/documents/%d/detail", id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// PDFText fetches the extracted text of a PDF.
func (c *Client) PDFText(ctx context.Context, id int) (*PDFText, error) {
	var p PDFText
	if err := c.getJSON(ctx, "load pdf text", fmt.Sprintf("/preview/pdf/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Word fetches the extracted content and image list of a Word
// document.
func (c *Client) Word(ctx context.Context, id int) (*WordDoc, error) {
	var w WordDoc
	if err := c.getJSON(ctx, "load word content", fmt.Sprintf("/preview/word/%d", id), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Excel fetches the extracted sheets of a spreadsheet.
func (c *Client) Excel(ctx context.Context, id int) (*Workbook, error) {
	var wb Workbook
	if err := c.getJSON(ctx, "load sheets", fmt.Sprintf("/preview/excel/%d", id), &wb); err != nil {
		return nil, err
	}
	return &wb, nil
}

// Media fetches raw bytes from a fully resolved URL: image or video
// endpoints, or a Word gallery asset.
func (c *Client) Media(ctx context.Context, url string) ([]byte, error) {
	const op = "fetch media"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &ServerError{Op: op, Message: http.StatusText(resp.StatusCode)}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaBytes+1))
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	if len(data) > maxMediaBytes {
		return nil, fmt.Errorf("%s: asset exceeds %d bytes", op, maxMediaBytes)
	}
	return data, nil
}

// RawURL is the raw-bytes endpoint for an extracted format (pdf, word,
// excel). Served as a direct link; the client never processes it.
func (c *Client) RawURL(format string, id int) string {
	return fmt.Sprintf("%s/preview/%s/raw/%d", c.baseURL, format, id)
}

// MediaURL is the direct byte-serving endpoint for image and video
// documents.
func (c *Client) MediaURL(format string, id int) string {
	return fmt.Sprintf("%s/preview/%s/%d", c.baseURL, format, id)
}

// Resolve expands a service-relative reference (such as a Word gallery
// image URL) into an absolute one.
func (c *Client) Resolve(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return c.baseURL + "/" + strings.TrimLeft(ref, "/")
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	return decodeEnvelope(op, resp, out)
}

func (c *Client) postJSON(ctx context.Context, op, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	return decodeEnvelope(op, resp, out)
}

func decodeEnvelope(op string, resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &ServerError{Op: op, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	if !env.Success {
		return &ServerError{Op: op, Message: env.Error}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s: decode payload: %w", op, err)
	}
	return nil
}

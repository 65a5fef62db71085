package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DocRequest is the body of a generate_docs call.
type DocRequest struct {
	LanguageID string `json:"languageId"`
	Commented  bool   `json:"commented"`
	Source     string `json:"source"`
	Context    string `json:"context"`
	Width      int    `json:"width"`
	Code       string `json:"code"`
	// Location and Line are null when the request carries highlighted code.
	Location *int    `json:"location"`
	Line     *string `json:"line"`
}

// NewRequest builds the request for target in doc.
func NewRequest(doc *Document, target *Target, width int, source string) *DocRequest {
	req := &DocRequest{
		LanguageID: doc.LanguageID,
		Commented:  true,
		Source:     source,
		Context:    doc.Text,
		Width:      width,
		Code:       target.Code,
		Location:   target.Location,
	}
	if target.Line != nil {
		text := target.Line.Text
		req.Line = &text
	}
	return req
}

// DocResponse is a successful generate_docs reply.
type DocResponse struct {
	Docstring    string    `json:"docstring"`
	Position     Placement `json:"position"`
	CursorMarker *string   `json:"cursorMarker,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Generator produces a docstring for a request.
type Generator interface {
	Generate(ctx context.Context, req *DocRequest) (*DocResponse, error)
}

// Client calls a generate_docs HTTP service.
type Client struct {
	url    string
	client *http.Client
}

// NewClient posts to url. A zero timeout leaves requests bounded only by ctx.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Generate(ctx context.Context, req *DocRequest) (*DocResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	slog.Info("generate docs", "url", c.url, "language", req.LanguageID, "width", req.Width)
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		// A body that is not JSON still fails the request, just without text.
		_ = json.Unmarshal(body, &errResp)
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	var docResp DocResponse
	if err := json.Unmarshal(body, &docResp); err != nil {
		return nil, &RequestError{StatusCode: resp.StatusCode, Err: err}
	}
	return &docResp, nil
}

package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

const (
	methodWorkDoneProgressCreate = "window/workDoneProgress/create"
	methodProgress               = "$/progress"

	rulersSection = "editor.rulers"
)

type workDoneProgressCreateParams struct {
	Token string `json:"token"`
}

type progressParams struct {
	Token string `json:"token"`
	Value any    `json:"value"`
}

type workDoneProgressBegin struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Cancellable bool   `json:"cancellable"`
}

type workDoneProgressEnd struct {
	Kind string `json:"kind"`
}

// clientHost drives the editor on the other end of conn.
type clientHost struct {
	conn   jsonrpc2.Conn
	tokens atomic.Int64
}

func newClientHost(conn jsonrpc2.Conn) *clientHost {
	return &clientHost{conn: conn}
}

func (h *clientHost) Rulers(ctx context.Context, uri protocol.DocumentURI) ([]int, error) {
	var result []json.RawMessage
	_, err := h.conn.Call(ctx, protocol.MethodWorkspaceConfiguration, protocol.ConfigurationParams{
		Items: []protocol.ConfigurationItem{
			{ScopeURI: uri, Section: rulersSection},
		},
	}, &result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return parseRulers(result[0])
}

// parseRulers accepts editor.rulers entries as plain columns or as
// {"column": n, "color": ...} objects.
func parseRulers(raw json.RawMessage) ([]int, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", rulersSection, err)
	}
	if entries == nil {
		return nil, nil
	}
	rulers := make([]int, 0, len(entries))
	for _, e := range entries {
		var column int
		if err := json.Unmarshal(e, &column); err == nil {
			rulers = append(rulers, column)
			continue
		}
		var obj struct {
			Column *int `json:"column"`
		}
		if err := json.Unmarshal(e, &obj); err != nil || obj.Column == nil {
			return nil, fmt.Errorf("%s: bad ruler %s", rulersSection, e)
		}
		rulers = append(rulers, *obj.Column)
	}
	return rulers, nil
}

func (h *clientHost) WithProgress(ctx context.Context, title string, fn func(context.Context) error) error {
	token := fmt.Sprintf("docwriter-%d", h.tokens.Add(1))
	var ignored json.RawMessage
	if _, err := h.conn.Call(ctx, methodWorkDoneProgressCreate, workDoneProgressCreateParams{Token: token}, &ignored); err != nil {
		slog.Warn("progress unavailable", "err", err)
		return fn(ctx)
	}

	if err := h.conn.Notify(ctx, methodProgress, progressParams{
		Token: token,
		Value: workDoneProgressBegin{Kind: "begin", Title: title},
	}); err != nil {
		slog.Warn("progress begin", "err", err)
	}

	err := fn(ctx)

	if endErr := h.conn.Notify(ctx, methodProgress, progressParams{
		Token: token,
		Value: workDoneProgressEnd{Kind: "end"},
	}); endErr != nil {
		slog.Warn("progress end", "err", endErr)
	}
	return err
}

func (h *clientHost) ShowError(ctx context.Context, message string) error {
	return h.conn.Notify(ctx, protocol.MethodWindowShowMessage, protocol.ShowMessageParams{
		Type:    protocol.MessageTypeError,
		Message: message,
	})
}

// InsertSnippet applies the snippet as a plain workspace edit.
func (h *clientHost) InsertSnippet(ctx context.Context, uri protocol.DocumentURI, snippet string, pos protocol.Position) error {
	var resp protocol.ApplyWorkspaceEditResponse
	_, err := h.conn.Call(ctx, protocol.MethodWorkspaceApplyEdit, protocol.ApplyWorkspaceEditParams{
		Label: "Insert documentation",
		Edit: protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentURI][]protocol.TextEdit{
				uri: {
					{
						Range:   protocol.Range{Start: pos, End: pos},
						NewText: snippet,
					},
				},
			},
		},
	}, &resp)
	if err != nil {
		return err
	}
	if !resp.Applied {
		return fmt.Errorf("edit rejected by client: %s", resp.FailureReason)
	}
	return nil
}

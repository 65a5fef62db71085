package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/harry-hov/docwriter/internal/docs"
)

func (s *server) DidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	s.snapshot.Set(&docs.Document{
		URI:        params.TextDocument.URI,
		LanguageID: string(params.TextDocument.LanguageID),
		Text:       params.TextDocument.Text,
	})

	slog.Info("open", "uri", params.TextDocument.URI, "language", params.TextDocument.LanguageID)
	return reply(ctx, nil, nil)
}

func (s *server) DidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	s.snapshot.Remove(params.TextDocument.URI)
	slog.Info("close", "uri", params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

func (s *server) DidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	uri := params.TextDocument.URI
	doc, ok := s.snapshot.Get(uri)
	if !ok {
		return reply(ctx, nil, errors.New("snapshot not found"))
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	// Full sync: the last change carries the whole document.
	s.snapshot.Set(&docs.Document{
		URI:        uri,
		LanguageID: doc.LanguageID,
		Text:       params.ContentChanges[len(params.ContentChanges)-1].Text,
	})

	slog.Info("change", "uri", uri)
	return reply(ctx, nil, nil)
}

func (s *server) DidSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	uri := params.TextDocument.URI
	doc, ok := s.snapshot.Get(uri)
	if !ok {
		return reply(ctx, nil, errors.New("snapshot not found"))
	}
	if params.Text != "" {
		s.snapshot.Set(&docs.Document{URI: uri, LanguageID: doc.LanguageID, Text: params.Text})
	}

	slog.Info("save", "uri", uri)
	return reply(ctx, nil, nil)
}

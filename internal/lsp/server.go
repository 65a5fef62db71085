package lsp

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/harry-hov/docwriter/internal/docs"
	"github.com/harry-hov/docwriter/internal/env"
	"github.com/harry-hov/docwriter/internal/version"
)

// Source identifies LSP editors to the generate_docs service.
const Source = "lsp"

type server struct {
	conn jsonrpc2.Conn
	env  *env.Env

	snapshot *Snapshot
	writer   *docs.Writer

	shutdown bool
}

func BuildServerHandler(conn jsonrpc2.Conn, env *env.Env) jsonrpc2.Handler {
	cfg := env.Config
	server := &server{
		conn: conn,

		env: env,

		snapshot: NewSnapshot(),
		writer: docs.NewWriter(
			newClientHost(conn),
			docs.NewClient(cfg.URL(), cfg.Timeout()),
			docs.Options{
				Languages:    cfg.Editor.Languages,
				Source:       Source,
				SingleFlight: cfg.Editor.SingleFlight,
			},
		),
	}

	// Commands call back into the client while they run, so requests are
	// handled off the read loop.
	return jsonrpc2.AsyncHandler(jsonrpc2.ReplyHandler(server.ServerHandler))
}

func (s *server) ServerHandler(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case "exit":
		return s.Exit(ctx, reply, req)
	case "initialize":
		return s.Initialize(ctx, reply, req)
	case "initialized":
		return s.Initialized(ctx, reply, req)
	case "shutdown":
		return s.Shutdown(ctx, reply, req)
	case "textDocument/didChange":
		return s.DidChange(ctx, reply, req)
	case "textDocument/didClose":
		return s.DidClose(ctx, reply, req)
	case "textDocument/didOpen":
		return s.DidOpen(ctx, reply, req)
	case "textDocument/didSave":
		return s.DidSave(ctx, reply, req)
	case "workspace/executeCommand":
		return s.ExecuteCommand(ctx, reply, req)
	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (s *server) Initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}
	if params.ClientInfo != nil {
		slog.Info("initialize", "client", params.ClientInfo.Name, "version", params.ClientInfo.Version)
	}

	return reply(ctx, protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{
			Name:    "docwriter",
			Version: version.Version,
		},
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				Change:    protocol.TextDocumentSyncKindFull,
				OpenClose: true,
				Save: &protocol.SaveOptions{
					IncludeText: true,
				},
			},
			ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
				Commands: []string{
					CommandWrite,
					CommandInsert,
				},
			},
		},
	}, nil)
}

func (s *server) Initialized(ctx context.Context, reply jsonrpc2.Replier, _ jsonrpc2.Request) error {
	slog.Info("initialized", "service", s.env.Config.URL())
	return reply(ctx, nil, nil)
}

func (s *server) Shutdown(ctx context.Context, reply jsonrpc2.Replier, _ jsonrpc2.Request) error {
	slog.Info("shutdown")
	s.shutdown = true
	return reply(ctx, nil, nil)
}

func (s *server) Exit(ctx context.Context, reply jsonrpc2.Replier, _ jsonrpc2.Request) error {
	slog.Info("exit")
	if s.shutdown {
		os.Exit(0)
	}
	os.Exit(1)
	return nil
}

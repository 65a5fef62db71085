package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/harry-hov/docwriter/internal/docs"
)

const (
	CommandWrite  = "docs.write"
	CommandInsert = "docs.insert"
)

type executeCommandParams struct {
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments,omitempty"`
}

// selectionArg is a selection as sent by the client. Active defaults to End.
type selectionArg struct {
	Start  protocol.Position  `json:"start"`
	End    protocol.Position  `json:"end"`
	Active *protocol.Position `json:"active,omitempty"`
}

func (a selectionArg) selection() docs.Selection {
	sel := docs.Selection{Start: a.Start, End: a.End, Active: a.End}
	if a.Active != nil {
		sel.Active = *a.Active
	}
	return sel
}

type writeArgs struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Selection    selectionArg                    `json:"selection"`
}

type insertArgs struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Position     docs.Placement                  `json:"position"`
	Content      string                          `json:"content"`
	Selection    selectionArg                    `json:"selection"`
}

// CommandResult is the reply to docs.write and docs.insert. Error carries
// outcomes the user was not shown, such as a missing editor.
type CommandResult struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

func newCommandResult(state docs.State, err error) CommandResult {
	res := CommandResult{State: state.String()}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// decodeArg reads the first command argument into v. It reports false when
// there are no arguments.
func decodeArg(args []json.RawMessage, v any) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(args[0], v); err != nil {
		return false, err
	}
	return true, nil
}

func (s *server) ExecuteCommand(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params executeCommandParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}
	slog.Info("execute", "command", params.Command)

	switch params.Command {
	case CommandWrite:
		var args writeArgs
		ok, err := decodeArg(params.Arguments, &args)
		if err != nil {
			return sendInvalidParams(ctx, reply, err)
		}
		var editor *docs.Editor
		if ok {
			editor = s.snapshot.Editor(args.TextDocument.URI, args.Selection.selection())
		}
		state, err := s.writer.Write(ctx, editor)
		slog.Info("docs.write done", "state", state, "err", err)
		return reply(ctx, newCommandResult(state, err), nil)
	case CommandInsert:
		var args insertArgs
		ok, err := decodeArg(params.Arguments, &args)
		if err != nil {
			return sendInvalidParams(ctx, reply, err)
		}
		var editor *docs.Editor
		if ok {
			editor = s.snapshot.Editor(args.TextDocument.URI, args.Selection.selection())
		}
		err = s.writer.Insert(ctx, editor, docs.InsertArgs{
			Position:  args.Position,
			Content:   args.Content,
			Selection: args.Selection.selection(),
		})
		state := docs.StateInserted
		if err != nil {
			state = docs.StateFailed
		}
		return reply(ctx, newCommandResult(state, err), nil)
	default:
		return sendInvalidParams(ctx, reply, fmt.Errorf("unknown command %q", params.Command))
	}
}

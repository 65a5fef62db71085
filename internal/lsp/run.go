package lsp

import (
	"context"
	"errors"
	"io"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/pkg/fakenet"

	"github.com/harry-hov/docwriter/internal/env"
)

// RunServer speaks LSP with the editor over in and out, answering
// docs.write and docs.insert until the editor disconnects. out carries only
// protocol frames, so logs must go elsewhere.
func RunServer(ctx context.Context, env *env.Env, in io.ReadCloser, out io.WriteCloser) error {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(fakenet.NewConn("stdio", in, out)))
	handler := BuildServerHandler(conn, env)
	err := jsonrpc2.HandlerServer(handler).ServeStream(ctx, conn)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

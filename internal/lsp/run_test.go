package lsp

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/harry-hov/docwriter/internal/env"
)

func TestRunServerStopsWhenEditorDisconnects(t *testing.T) {
	in, editorOut := io.Pipe()
	editorIn, out := io.Pipe()
	go io.Copy(io.Discard, editorIn)

	done := make(chan error, 1)
	go func() {
		done <- RunServer(context.Background(), &env.Env{Config: env.DefaultConfig()}, in, out)
	}()
	editorOut.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server still running after the editor disconnected")
	}
}

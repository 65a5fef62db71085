package docs

import (
	"context"
	"errors"
	"log/slog"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/multierr"
)

// ProgressTitle is shown while the backend is generating.
const ProgressTitle = "Generating documentation"

// State is where a docs.write invocation ended up.
type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
	StateInserted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting_response"
	case StateInserted:
		return "inserted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Options struct {
	// Languages gates docs.write when nothing is highlighted.
	Languages []string
	// Source identifies the calling environment to the backend.
	Source string
	// SingleFlight rejects docs.write for a document that already has a
	// request outstanding.
	SingleFlight bool
}

// Writer runs docs.write and docs.insert against a Host.
type Writer struct {
	host      Host
	generator Generator
	languages Languages
	source    string

	// nil unless Options.SingleFlight is set.
	inflight *cmap.ConcurrentMap[string, struct{}]
}

func NewWriter(host Host, generator Generator, opts Options) *Writer {
	w := &Writer{
		host:      host,
		generator: generator,
		languages: NewLanguages(opts.Languages...),
		source:    opts.Source,
	}
	if opts.SingleFlight {
		m := cmap.New[struct{}]()
		w.inflight = &m
	}
	return w
}

// Write documents the editor's selection, or its cursor line. It returns the
// state the invocation finished in; user facing failures have already been
// shown through the host when it returns.
func (w *Writer) Write(ctx context.Context, editor *Editor) (State, error) {
	target, err := Extract(editor, w.languages)
	if err != nil {
		return StateIdle, w.fail(ctx, err)
	}
	doc := editor.Document

	rulers, err := w.host.Rulers(ctx, doc.URI)
	if err != nil {
		slog.Warn("read rulers", "uri", doc.URI, "err", err)
		rulers = nil
	}
	req := NewRequest(doc, target, Width(rulers, target.Indent), w.source)

	if w.inflight != nil {
		key := string(doc.URI)
		if !w.inflight.SetIfAbsent(key, struct{}{}) {
			return StateIdle, w.fail(ctx, ErrInFlight)
		}
		defer w.inflight.Remove(key)
	}

	slog.Info("docs.write", "uri", doc.URI, "state", StateAwaitingResponse, "highlighted", target.Line == nil)
	var resp *DocResponse
	err = w.host.WithProgress(ctx, ProgressTitle, func(ctx context.Context) error {
		var err error
		resp, err = w.generator.Generate(ctx, req)
		return err
	})
	if err != nil {
		return StateFailed, w.fail(ctx, asRequestError(err))
	}
	if resp.CursorMarker != nil {
		slog.Debug("cursor marker ignored", "marker", *resp.CursorMarker)
	}

	err = Insert(ctx, w.host, editor, InsertArgs{
		Position:  resp.Position,
		Content:   resp.Docstring,
		Selection: target.Selection,
	})
	if err != nil {
		return StateFailed, w.fail(ctx, err)
	}
	return StateInserted, nil
}

// Insert runs docs.insert.
func (w *Writer) Insert(ctx context.Context, editor *Editor, args InsertArgs) error {
	if err := Insert(ctx, w.host, editor, args); err != nil {
		return w.fail(ctx, err)
	}
	return nil
}

// fail shows err to the user when it has a message and returns it.
func (w *Writer) fail(ctx context.Context, err error) error {
	msg := UserMessage(err)
	if msg == "" {
		slog.Info("docs: no action", "reason", err)
		return err
	}
	slog.Error("docs", "err", err)
	if showErr := w.host.ShowError(ctx, msg); showErr != nil {
		return multierr.Append(err, showErr)
	}
	return err
}

// asRequestError makes any failure of the progress-wrapped call surface as
// a request failure, so the user always gets a message.
func asRequestError(err error) error {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return err
	}
	return &RequestError{Err: err}
}

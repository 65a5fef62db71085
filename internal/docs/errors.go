package docs

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveEditor means there was no document to operate on. It is
	// never shown to the user.
	ErrNoActiveEditor      = errors.New("no active editor")
	ErrEmptyLineSelected   = errors.New("empty line selected")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrUnknownPosition means the backend asked for a placement other than
	// above or below. Nothing is inserted and nothing is shown.
	ErrUnknownPosition = errors.New("unknown docstring position")
	ErrInFlight        = errors.New("request already in flight")
)

// GenericFailureMessage is shown when the backend gives no error text.
const GenericFailureMessage = "Error occurred while generating docs"

var userMessages = map[error]string{
	ErrEmptyLineSelected:   "Please select a line with code and try again.",
	ErrUnsupportedLanguage: "Please select code and try again..",
	ErrInFlight:            "Documentation is already being generated for this file",
}

// RequestError is a failed call to the generate_docs service.
type RequestError struct {
	// StatusCode is zero for transport failures.
	StatusCode int
	// Message is the backend supplied error text, if any.
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("generate docs: status %d: %s", e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("generate docs: %v", e.Err)
	default:
		return fmt.Sprintf("generate docs: status %d", e.StatusCode)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// UserMessage is the text shown to the user for err, or "" when err is
// one of the silent outcomes.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Message != "" {
			return reqErr.Message
		}
		return GenericFailureMessage
	}
	for sentinel, msg := range userMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return ""
}

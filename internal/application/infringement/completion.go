package infringement

import (
	"context"
	stderrors "errors"
	"io"
	"strings"

	"github.com/eino-contrib/jsonschema"

	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// SchemaName names the structured-output schema sent to the provider.
const SchemaName = "analysis"

// Request is one completion call.
type Request struct {
	SystemPrompt string
	UserPrompt   string

	// Schema constrains the output document.  Providers without native
	// structured output receive it as part of the system prompt.
	Schema *jsonschema.Schema
}

// Completer sends a Request to a language model and returns the full text of
// the streamed reply once the stream has ended.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Accumulate drains next until it returns io.EOF and concatenates the
// fragments in delivery order.  Empty fragments are skipped.  Any other error
// aborts the fold and is returned with the text gathered so far discarded.
func Accumulate(next func() (string, error)) (string, error) {
	var sb strings.Builder
	for {
		chunk, err := next()
		if stderrors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if chunk != "" {
			sb.WriteString(chunk)
		}
	}
}

// StreamError classifies a failure of the provider stream as an
// external-service error.
func StreamError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, errors.ErrCodeExternalService, "completion stream failed").
		WithDetail("provider=" + provider)
}

//Personal.AI order the ending

// Package anthropic streams analysis completions from the Anthropic Messages
// API.
package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	"github.com/turtacn/InfringeCheck/internal/application/infringement"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// ProviderName labels this backend in logs, metrics and errors.
const ProviderName = "anthropic"

const schemaInstruction = "\n\nRespond with a single JSON document, without markdown fences, " +
	"that validates against this JSON schema:\n"

// Config parameterises the Messages client.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int

	// HTTPClient is used for every request when set.
	HTTPClient *http.Client
}

// MessageStreamer is the subset of anthropic.MessageService used here.
type MessageStreamer interface {
	NewStreaming(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) *ssestream.Stream[anthropic.MessageStreamEventUnion]
}

// Completer implements infringement.Completer.
type Completer struct {
	messages MessageStreamer
	cfg      Config
	logger   logging.Logger
}

var _ infringement.Completer = (*Completer)(nil)

// New validates cfg and builds the SDK client.  SDK retries are disabled.
func New(cfg Config, logger logging.Logger) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeAIModelNotAvailable, "anthropic api key is not configured")
	}
	if cfg.Model == "" {
		return nil, errors.New(errors.ErrCodeAIModelNotAvailable, "anthropic model is not configured")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	client := anthropic.NewClient(opts...)
	return NewWithStreamer(&client.Messages, cfg, logger), nil
}

// NewWithStreamer wraps an existing streamer.
func NewWithStreamer(messages MessageStreamer, cfg Config, logger logging.Logger) *Completer {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Completer{messages: messages, cfg: cfg, logger: logger}
}

// Complete streams a message and folds its text deltas.  The Messages API
// has no response-format field, so the schema is appended to the system
// prompt.
func (c *Completer) Complete(ctx context.Context, req infringement.Request) (string, error) {
	system, err := systemPrompt(req)
	if err != nil {
		return "", err
	}

	stream := c.messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   int64(c.cfg.MaxTokens),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt))},
		Temperature: anthropic.Float(float64(c.cfg.Temperature)),
	})
	defer stream.Close()

	text, err := infringement.Accumulate(func() (string, error) {
		for stream.Next() {
			ev, ok := stream.Current().AsAny().(anthropic.ContentBlockDeltaEvent)
			if !ok {
				continue
			}
			if d, ok := ev.Delta.AsAny().(anthropic.TextDelta); ok {
				return d.Text, nil
			}
		}
		if err := stream.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	})
	if err != nil {
		return "", infringement.StreamError(ProviderName, err)
	}

	c.logger.Debug("completion stream finished",
		logging.String("model", c.cfg.Model),
		logging.Int("response_bytes", len(text)))
	return stripCodeFence(text), nil
}

func systemPrompt(req infringement.Request) (string, error) {
	if req.Schema == nil {
		return req.SystemPrompt, nil
	}
	data, err := json.Marshal(req.Schema)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode response schema")
	}
	return req.SystemPrompt + schemaInstruction + string(data), nil
}

// stripCodeFence removes a surrounding ```json ... ``` fence, which Claude
// models sometimes add despite instructions.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") || len(trimmed) < 6 {
		return text
	}
	body := strings.TrimSuffix(trimmed[3:], "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "{[") {
		body = body[nl+1:]
	}
	return strings.TrimSpace(body)
}

//Personal.AI order the ending

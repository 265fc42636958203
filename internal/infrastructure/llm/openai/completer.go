// Package openai streams analysis completions from the OpenAI chat
// completions API, or any compatible gateway, through the eino chat model.
package openai

import (
	"context"
	"net/http"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/eino-contrib/jsonschema"

	"github.com/turtacn/InfringeCheck/internal/application/infringement"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// ProviderName labels this backend in logs, metrics and errors.
const ProviderName = "openai"

// Config parameterises the chat model.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int

	// HTTPClient is used for every request when set.
	HTTPClient *http.Client
}

// Completer implements infringement.Completer.  A chat model is built per
// distinct response schema and reused afterwards.
type Completer struct {
	cfg    Config
	logger logging.Logger

	mu     sync.Mutex
	models map[*jsonschema.Schema]model.BaseChatModel
}

var _ infringement.Completer = (*Completer)(nil)

// New validates cfg and returns a Completer.  No request is made.
func New(cfg Config, logger logging.Logger) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeAIModelNotAvailable, "openai api key is not configured")
	}
	if cfg.Model == "" {
		return nil, errors.New(errors.ErrCodeAIModelNotAvailable, "openai model is not configured")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Completer{
		cfg:    cfg,
		logger: logger,
		models: make(map[*jsonschema.Schema]model.BaseChatModel),
	}, nil
}

// Complete opens a chat completion stream and folds its content deltas.
func (c *Completer) Complete(ctx context.Context, req infringement.Request) (string, error) {
	cm, err := c.chatModel(ctx, req.Schema)
	if err != nil {
		return "", err
	}

	sr, err := cm.Stream(ctx, []*schema.Message{
		schema.SystemMessage(req.SystemPrompt),
		schema.UserMessage(req.UserPrompt),
	})
	if err != nil {
		return "", infringement.StreamError(ProviderName, err)
	}
	defer sr.Close()

	text, err := infringement.Accumulate(func() (string, error) {
		msg, err := sr.Recv()
		if err != nil {
			return "", err
		}
		return msg.Content, nil
	})
	if err != nil {
		return "", infringement.StreamError(ProviderName, err)
	}

	c.logger.Debug("completion stream finished",
		logging.String("model", c.cfg.Model),
		logging.Int("response_bytes", len(text)))
	return text, nil
}

func (c *Completer) chatModel(ctx context.Context, s *jsonschema.Schema) (model.BaseChatModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cm, ok := c.models[s]; ok {
		return cm, nil
	}

	temperature := c.cfg.Temperature
	mc := &openai.ChatModelConfig{
		APIKey:      c.cfg.APIKey,
		BaseURL:     c.cfg.BaseURL,
		Model:       c.cfg.Model,
		Temperature: &temperature,
		HTTPClient:  c.cfg.HTTPClient,
	}
	if c.cfg.MaxTokens > 0 {
		maxTokens := c.cfg.MaxTokens
		mc.MaxTokens = &maxTokens
	}
	if s != nil {
		mc.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:       infringement.SchemaName,
				JSONSchema: s,
				Strict:     true,
			},
		}
	}

	cm, err := openai.NewChatModel(ctx, mc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAIModelNotAvailable, "failed to create openai chat model")
	}
	c.models[s] = cm
	return cm, nil
}

//Personal.AI order the ending

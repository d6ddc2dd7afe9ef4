package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient calls the OpenAI Chat Completions API.
type OpenAIClient struct {
	model  openai.ChatModel
	client *openai.Client
}

const (
	defaultChatTimeout     = 60 * time.Second
	defaultChatTemperature = 0.1
)

// NewOpenAIClient builds a client with defaults against api.openai.com.
func NewOpenAIClient(apiKey string, model openai.ChatModel) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		model:  model,
		client: &cli,
	}, nil
}

func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, opts Options) (string, error) {
	if c == nil || c.client == nil {
		return "", &ProviderError{Fatal: true, Err: fmt.Errorf("nil openai client")}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	temperature := opts.Temperature
	if temperature == 0 {
		temperature = defaultChatTemperature
	}
	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    buildMessages(messages),
		Temperature: openai.Float(temperature),
	}
	if opts.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(opts.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(reqCtx, params)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &ProviderError{Err: fmt.Errorf("openai: no choices returned")}
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		case RoleAssistant:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		default:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		}
	}
	return out
}

// classify maps SDK errors onto the transient/fatal taxonomy. Context
// expiry counts as transient: the caller treats a timed-out call like any
// other retryable provider failure.
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{
			Status: apiErr.StatusCode,
			Fatal:  fatalStatus(apiErr.StatusCode),
			Err:    err,
		}
	}
	return &ProviderError{Err: err}
}

package intent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
	openai "github.com/sashabaranov/go-openai"
)

const extractionSystemPrompt = `You extract intent signals from helpdesk questions.
Respond with a single JSON object and nothing else:
{"domain": "...", "action": "...", "keywords": "..."}
- domain: one of "payments", "tickets", or "" if neither applies.
- action: one of "charge", "refund", "subscribe", "cancel", "track", or "".
- keywords: the content words of the question, space separated, lowercase.`

// OpenAIConfig configures the remote extractor.
type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

// OpenAIExtractor asks an OpenAI-compatible chat model for intent signals.
// Responses are repaired before decoding because chat models routinely emit
// almost-JSON. Use it behind a CircuitBreakerExtractor in deployments.
type OpenAIExtractor struct {
	client *openai.Client
	config OpenAIConfig
}

// NewOpenAIExtractor creates the remote extractor. BaseURL may point at any
// OpenAI-compatible endpoint.
func NewOpenAIExtractor(config OpenAIConfig) (*OpenAIExtractor, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("openai extractor: api key is required")
	}
	if config.Model == "" {
		config.Model = openai.GPT4oMini
	}

	var client *openai.Client
	if config.BaseURL != "" {
		clientConfig := openai.DefaultConfig(config.APIKey)
		clientConfig.BaseURL = config.BaseURL
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		client = openai.NewClient(config.APIKey)
	}
	return &OpenAIExtractor{client: client, config: config}, nil
}

// Extract implements Extractor.
func (e *OpenAIExtractor) Extract(ctx context.Context, text string) (Extraction, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.config.Model,
		Temperature: e.config.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return Extraction{}, fmt.Errorf("openai extractor: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Extraction{}, fmt.Errorf("openai extractor: empty response")
	}

	content := resp.Choices[0].Message.Content
	repaired, _ := jsonrepair.JSONRepair(content)
	if repaired != "" {
		content = repaired
	}

	var ext Extraction
	if err := json.Unmarshal([]byte(content), &ext); err != nil {
		return Extraction{}, fmt.Errorf("openai extractor: decode response: %w", err)
	}
	return ext, nil
}

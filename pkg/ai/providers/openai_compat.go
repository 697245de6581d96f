package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"course_assistant/pkg/ai"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/ssestream"
)

// chatCompletionsClient covers the OpenAI-compatible backends (OpenAI, OpenRouter).
type chatCompletionsClient struct {
	name               string
	client             openai.Client
	defaultModel       string
	defaultTemperature float64
	defaultMaxTokens   int
}

func (c *chatCompletionsClient) complete(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	params, err := c.buildChatParams(req)
	if err != nil {
		return ai.ChatResponse{}, err
	}

	slog.Debug(c.name+"_chat_request",
		"model", string(params.Model),
		"message_count", len(req.Messages),
	)
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ai.ChatResponse{}, err
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	return ai.ChatResponse{
		Content: content,
		Model:   resp.Model,
	}, nil
}

func (c *chatCompletionsClient) stream(ctx context.Context, req ai.ChatRequest) (ai.ChatStream, error) {
	params, err := c.buildChatParams(req)
	if err != nil {
		return nil, err
	}

	slog.Debug(c.name+"_chat_stream_request",
		"model", string(params.Model),
		"message_count", len(req.Messages),
	)
	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		return nil, err
	}

	return &chatCompletionStream{stream: stream}, nil
}

func (c *chatCompletionsClient) buildChatParams(req ai.ChatRequest) (openai.ChatCompletionNewParams, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = c.defaultModel
	}
	if strings.TrimSpace(model) == "" {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("messages are required")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		param, err := toChatMessageParam(msg)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		messages = append(messages, param)
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}

	temperature := c.defaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	params.Temperature = openai.Float(temperature)

	maxTokens := c.defaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	return params, nil
}

func toChatMessageParam(msg ai.Message) (openai.ChatCompletionMessageParamUnion, error) {
	role := strings.ToLower(strings.TrimSpace(msg.Role))
	switch role {
	case ai.RoleSystem:
		return openai.SystemMessage(msg.Content), nil
	case ai.RoleUser:
		return openai.UserMessage(msg.Content), nil
	case ai.RoleAssistant, "model":
		return openai.AssistantMessage(msg.Content), nil
	default:
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("unsupported role: %s", msg.Role)
	}
}

type chatCompletionStream struct {
	stream *ssestream.Stream[openai.ChatCompletionChunk]
}

func (s *chatCompletionStream) Next() bool {
	return s.stream.Next()
}

func (s *chatCompletionStream) Content() string {
	chunk := s.stream.Current()
	if len(chunk.Choices) == 0 {
		return ""
	}
	return chunk.Choices[0].Delta.Content
}

func (s *chatCompletionStream) Err() error {
	return s.stream.Err()
}

func (s *chatCompletionStream) Close() error {
	return s.stream.Close()
}

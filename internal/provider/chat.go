package provider

import (
	"context"
	"log"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

const chatSystemPrompt = `You are a stablecoin research assistant. You answer questions about stablecoins: their backing, issuers, risks, adoption and market behavior.

Rules:
- Never fabricate market data. If data is unavailable, say so.
- Be specific about backing mechanisms and issuer entities.
- Keep answers factual and compact; use dash bullets for lists.
- Do not give investment advice or price predictions.`

// ChatProvider wraps the chat-completion API behind the uniform provider
// contract. Replies are stripped to plain text before they leave the adapter.
type ChatProvider struct {
	tracer trace.Tracer
	llm    LLMClient
	model  string
}

func NewChatProvider(tracer trace.Tracer, llm LLMClient, model string) *ChatProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &ChatProvider{tracer: tracer, llm: llm, model: model}
}

// Complete sends one prompt and returns the plain-text reply. A single
// attempt per call; failures collapse into the result envelope.
func (p *ChatProvider) Complete(ctx context.Context, prompt string) Result[string] {
	ctx, span := p.tracer.Start(ctx, "chat.complete")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", p.model),
		attribute.Int("llm.prompt_length", len(prompt)),
	)

	if p.llm == nil {
		return Fail[string](ErrEmptyPayload)
	}

	completion, err := p.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(chatSystemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		span.RecordError(err)
		log.Printf("chat completion failed: %v", err)
		return Fail[string](classifyChatError(err))
	}
	if len(completion.Choices) == 0 {
		return Fail[string](ErrEmptyPayload)
	}

	reply := StripMarkdown(completion.Choices[0].Message.Content)
	if reply == "" {
		return Fail[string](ErrEmptyPayload)
	}
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return Ok(reply)
}

func classifyChatError(err error) ErrorKind {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return ErrRateLimited
	}
	return ErrNetwork
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey string) LLMClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiClient{client: client}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}

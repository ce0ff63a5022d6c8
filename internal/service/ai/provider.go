package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GenerateRequest is one schema-constrained structured-generation call.
// Document is optional; when set it is attached inline ahead of Text.
type GenerateRequest struct {
	System       string
	Text         string
	Document     []byte
	DocumentMIME string
	Schema       *genai.Schema
}

// JSONProvider produces schema-conforming JSON for a request.
type JSONProvider interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GeminiProvider is the primary provider. It enforces the response schema
// natively and accepts inline document payloads.
type GeminiProvider struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiProvider(client *genai.Client, model string, logger *zap.Logger) *GeminiProvider {
	return &GeminiProvider{
		client: client,
		model:  model,
		logger: logger,
	}
}

func (g *GeminiProvider) Name() string {
	return "Gemini"
}

func (g *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	temperature := float32(0.2)
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	parts := make([]*genai.Part, 0, 2)
	if len(req.Document) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: req.DocumentMIME,
				Data:     req.Document,
			},
		})
	}
	if req.Text != "" {
		parts = append(parts, &genai.Part{Text: req.Text})
	}

	g.logger.Debug("Generating with Gemini",
		zap.String("model", g.model),
		zap.Bool("document", len(req.Document) > 0),
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{Parts: parts},
	}, config)
	if err != nil {
		g.logger.Error("Gemini generation failed", zap.Error(err))
		return "", err
	}

	text := extractTextFromGeminiResponse(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}

	g.logger.Debug("Gemini response received", zap.Int("length", len(text)))
	return text, nil
}

// OpenAIProvider is the JSON-mode fallback for text-only stages. It cannot
// attach document payloads; the schema is conveyed via the system prompt.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAIProvider(apiKey, model string, logger *zap.Logger) *OpenAIProvider {
	if apiKey == "" {
		return nil
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		client: &client,
		model:  model,
		logger: logger,
	}
}

func (o *OpenAIProvider) Name() string {
	return "OpenAI"
}

func (o *OpenAIProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if o == nil || o.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}
	if len(req.Document) > 0 {
		return "", fmt.Errorf("OpenAI fallback does not accept document payloads")
	}

	o.logger.Info("Fallback: Generating with OpenAI", zap.String("model", o.model))

	system := req.System + "\n\nYou must respond with valid JSON only. Do not include any text outside the JSON object."

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(req.Text),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		o.logger.Error("OpenAI generation failed", zap.Error(err))
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	text := resp.Choices[0].Message.Content
	o.logger.Debug("OpenAI response received",
		zap.Int("length", len(text)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	return text, nil
}

func extractTextFromGeminiResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	text := ""
	for _, part := range candidate.Content.Parts {
		text += part.Text
	}
	return text
}

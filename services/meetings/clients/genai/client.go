package genai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"

	config "github.com/meetscribe/backend/config/meetings"
	"github.com/meetscribe/backend/services/meetings/entity"
)

// Client wraps the external AI provider. Transcription and summarization are
// each a single attempt; nothing is retried here.
type Client struct {
	api *openai.Client
	cfg config.GenAIConfig
	log *slog.Logger
}

// New builds a provider client. Without an API key the client is still
// constructed so the service can boot; calls then fail with
// entity.ErrProviderUnavailable.
func New(cfg config.GenAIConfig, log *slog.Logger) *Client {
	var api *openai.Client
	if cfg.APIKey != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
		api = openai.NewClientWithConfig(clientConfig)
	}

	log.Debug("genai client created",
		slog.Bool("api_key_set", cfg.APIKey != ""),
		slog.String("transcription_model", cfg.TranscriptionModel),
		slog.String("summary_model", cfg.SummaryModel))

	return &Client{
		api: api,
		cfg: cfg,
		log: log,
	}
}

// Transcribe uploads the audio file at filePath and returns the full
// transcript text.
func (c *Client) Transcribe(ctx context.Context, filePath string) (string, error) {
	if c.api == nil {
		return "", entity.ErrProviderUnavailable
	}

	req := openai.AudioRequest{
		Model:    c.cfg.TranscriptionModel,
		FilePath: filePath,
		Prompt:   transcribePrompt,
	}

	start := time.Now()
	resp, err := c.api.CreateTranscription(ctx, req)
	duration := time.Since(start)

	if err != nil {
		c.log.Error("transcription call failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", &entity.TranscriptionError{Err: err}
	}

	c.log.Info("audio transcribed",
		slog.String("file", filePath),
		slog.Duration("duration", duration),
		slog.Int("transcript_length", len(resp.Text)))
	return resp.Text, nil
}

// Summarize asks the provider for a tagged summary of the transcript and
// parses out the labeled sections. Missing sections come back as empty
// strings, never as an error.
func (c *Client) Summarize(ctx context.Context, transcript string) (*entity.SummaryResult, error) {
	if c.api == nil {
		return nil, entity.ErrProviderUnavailable
	}

	req := openai.ChatCompletionRequest{
		Model: c.cfg.SummaryModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarizePrompt},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
		Temperature: 0.3,
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		c.log.Error("summarization call failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, &entity.SummarizationError{Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &entity.SummarizationError{Err: errors.New("no response choices")}
	}

	out := resp.Choices[0].Message.Content
	result := &entity.SummaryResult{
		Summary:     ExtractSection(out, HeaderSummary),
		People:      "",
		ActionItems: ExtractSection(out, HeaderActionItems),
	}

	c.log.Info("transcript summarized",
		slog.Duration("duration", duration),
		slog.Int("summary_length", len(result.Summary)),
		slog.Int("action_items_length", len(result.ActionItems)))
	return result, nil
}

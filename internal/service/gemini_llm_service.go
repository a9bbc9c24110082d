package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MaxKochergin/NNGP-sub002/config"
	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiLLMService writes advisory feedback on free-text answers.
type GeminiLLMService interface {
	ReviewTextAnswer(ctx context.Context, question *model.Question, answer string) (string, error)
	ModelName() string
	Available() bool
}

type geminiLLMService struct {
	client    *genai.GenerativeModel
	modelName string
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.Gemini.ApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{modelName: cfg.Gemini.Model}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiLLMService{client: client.GenerativeModel(cfg.Gemini.Model), modelName: cfg.Gemini.Model}, nil
}

func (s *geminiLLMService) ModelName() string { return s.modelName }

func (s *geminiLLMService) Available() bool { return s.client != nil }

func (s *geminiLLMService) ReviewTextAnswer(ctx context.Context, question *model.Question, answer string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not initialized: %w", common.ErrServiceUnavailable)
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(buildReviewPrompt(question, answer)))
	if err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Msg("Gemini API error during review")
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Uint("questionID", question.ID).Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("gemini returned no content")
	}

	var fullResponseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullResponseText.WriteString(string(txt))
		}
	}
	feedback := extractFeedback(fullResponseText.String())
	if feedback == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return feedback, nil
}

func buildReviewPrompt(question *model.Question, answer string) string {
	var b strings.Builder
	b.WriteString("You are an experienced technical interviewer reviewing a candidate's written answer.\n")
	b.WriteString("Do not assign a score. Give short, constructive feedback: what is right, what is missing or wrong, and how to improve.\n\n")
	b.WriteString("Question:\n---\n")
	b.WriteString(question.Content)
	b.WriteString("\n---\n\nCandidate's answer:\n---\n")
	b.WriteString(answer)
	b.WriteString("\n---\n\nFormat your response strictly as:\nFeedback:\n[Your feedback here]\n")
	return b.String()
}

// extractFeedback strips the "Feedback:" label the prompt asks for. Unlabelled text is returned as is.
func extractFeedback(raw string) string {
	const feedbackPrefix = "feedback:"
	text := strings.TrimSpace(raw)
	if idx := strings.Index(strings.ToLower(text), feedbackPrefix); idx != -1 {
		text = strings.TrimSpace(text[idx+len(feedbackPrefix):])
	}
	return text
}

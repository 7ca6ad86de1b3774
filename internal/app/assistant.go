/**
 * @description
 * Credit-gated assistant chat. Requests pass through the credit gate, run
 * against the Gemini API, and debit the caller's balance only after a
 * successful completion of a premium configuration.
 *
 * @dependencies
 * - github.com/google/generative-ai-go/genai: Gemini client.
 * - google.golang.org/api/option: API key option for the client.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/scoutline/outreach-service/internal/domain"
	"github.com/scoutline/outreach-service/internal/store"
	"google.golang.org/api/option"
)

// ErrPaywalled is returned when the credit gate denies a configuration.
type ErrPaywalled struct {
	Decision Decision
}

func (e *ErrPaywalled) Error() string {
	return e.Decision.Reason
}

// TextGenerator produces a completion for a prompt with a given model.
type TextGenerator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// GeminiGenerator is the Gemini-backed TextGenerator.
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator dials the Gemini API with the given key.
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{client: client}, nil
}

// GenerateText runs one completion and concatenates the candidate text parts.
func (g *GeminiGenerator) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	m := g.client.GenerativeModel(model)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if resp != nil {
		for _, c := range resp.Candidates {
			if c == nil || c.Content == nil {
				continue
			}
			for _, p := range c.Content.Parts {
				if t, ok := p.(genai.Text); ok {
					b.WriteString(string(t))
				}
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// SetTextGenerator installs the completion backend.
func (s *Service) SetTextGenerator(gen TextGenerator) {
	s.generator = gen
}

// AssistantChatRequest is the DTO for assistant chat API requests.
type AssistantChatRequest struct {
	App              string `json:"app"`
	Message          string `json:"message"`
	Model            string `json:"model,omitempty"`
	AllowWebBrowsing bool   `json:"allow_web_browsing"`
}

// AssistantChatResponse carries the completion and any billing outcome.
type AssistantChatResponse struct {
	Reply            string `json:"reply"`
	CreditsCharged   int    `json:"credits_charged"`
	CreditsRemaining *int   `json:"credits_remaining,omitempty"`
}

// AssistantChat runs one gated completion for the caller. The configured
// app's model is used unless the request overrides it; premium configurations
// debit exactly one credit after the completion succeeds.
func (s *Service) AssistantChat(ctx context.Context, userID uuid.UUID, req AssistantChatRequest) (*AssistantChatResponse, error) {
	if s.generator == nil {
		return nil, errors.New("assistant backend is not configured")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	appCfg, ok := domain.Apps[req.App]
	if !ok {
		return nil, fmt.Errorf("unknown app %q", req.App)
	}
	model := appCfg.Model
	if req.Model != "" {
		model = req.Model
	}

	profile, err := s.repo.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, store.ErrProfileNotFound
	}
	credits := 0
	if profile.Credits != nil {
		credits = *profile.Credits
	}

	decision := CanUseConfiguration(credits, ActionConfig{
		Model:            model,
		AllowWebBrowsing: req.AllowWebBrowsing || appCfg.AllowWebBrowsing,
	})
	if !decision.CanUse {
		return nil, &ErrPaywalled{Decision: decision}
	}

	prompt := buildAssistantPrompt(appCfg, req.Message)
	reply, err := s.generator.GenerateText(ctx, model, prompt)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	resp := &AssistantChatResponse{Reply: reply}
	if decision.RequiredCredits > 0 {
		remaining, debitErr := s.DebitCredits(ctx, profile.Email, decision.RequiredCredits)
		if debitErr != nil {
			return nil, debitErr
		}
		resp.CreditsCharged = decision.RequiredCredits
		resp.CreditsRemaining = &remaining
	}
	return resp, nil
}

// buildAssistantPrompt frames the user's message with the app's persona.
func buildAssistantPrompt(appCfg domain.AppConfig, message string) string {
	var b strings.Builder
	b.WriteString("You are ")
	b.WriteString(appCfg.Name)
	b.WriteString(", an assistant for a sales outreach platform. ")
	b.WriteString(appCfg.Tagline)
	b.WriteString("\n\nUser: ")
	b.WriteString(message)
	return b.String()
}

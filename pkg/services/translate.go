// Package services orchestrates natural-language translation: prompt
// construction, the LLM call with its timeout, and strict parsing of the
// model's response into a query configuration.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/skedhub/sked-engine/pkg/apperrors"
	"github.com/skedhub/sked-engine/pkg/llm"
	"github.com/skedhub/sked-engine/pkg/prompts"
	"github.com/skedhub/sked-engine/pkg/query"
	"github.com/skedhub/sked-engine/pkg/sql"
)

// DefaultTranslationTimeout bounds the LLM call.
const DefaultTranslationTimeout = 60 * time.Second

// TokenUsage reports translation cost. Always zero-filled, never nil.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// TranslationResult is a successfully translated question.
type TranslationResult struct {
	Config *query.Config
	Usage  TokenUsage
}

// NotAScheduleQueryError is the LLM-declared semantic error: the
// question is understood but cannot be answered as a schedule query.
// The reason is user-safe and surfaced verbatim.
type NotAScheduleQueryError struct {
	Reason string
}

func (e *NotAScheduleQueryError) Error() string {
	return e.Reason
}

// TranslationService turns questions into query configurations.
type TranslationService interface {
	Translate(ctx context.Context, question string, today time.Time) (*TranslationResult, error)
}

type translationService struct {
	client  llm.CompletionClient
	timeout time.Duration
	logger  *zap.Logger
}

// NewTranslationService creates a TranslationService backed by the given
// completion client. A non-positive timeout falls back to
// DefaultTranslationTimeout.
func NewTranslationService(client llm.CompletionClient, timeout time.Duration, logger *zap.Logger) TranslationService {
	if timeout <= 0 {
		timeout = DefaultTranslationTimeout
	}
	return &translationService{
		client:  client,
		timeout: timeout,
		logger:  logger.Named("translate"),
	}
}

// envelope is the only response shape the model is allowed to produce.
type envelope struct {
	Config json.RawMessage `json:"config"`
	Error  string          `json:"error"`
}

// Translate builds the prompt, calls the model under the service
// timeout, and parses the response strictly. A response that is neither
// a config nor an LLM-declared error is a hard translation failure.
func (s *translationService) Translate(ctx context.Context, question string, today time.Time) (*TranslationResult, error) {
	prompt := prompts.BuildScheduleQueryPrompt(question, today)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.client.Complete(ctx, prompt, prompts.BuildScheduleQuerySystemMessage())
	if err != nil {
		if llm.IsTimeout(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrTranslationTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTranslationFailed, err)
	}

	usage := TokenUsage{
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
		TotalTokens:      result.TotalTokens,
	}

	parsed, err := llm.ParseJSONResponse[envelope](result.Content)
	if err != nil {
		s.logger.Warn("unparseable translation response",
			zap.Int("response_len", len(result.Content)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTranslationFailed, err)
	}

	if parsed.Error != "" {
		return nil, &NotAScheduleQueryError{Reason: parsed.Error}
	}

	if len(parsed.Config) == 0 || string(parsed.Config) == "null" {
		return nil, fmt.Errorf("%w: response contained neither config nor error", apperrors.ErrTranslationFailed)
	}

	var cfg query.Config
	if err := json.Unmarshal(parsed.Config, &cfg); err != nil {
		return nil, fmt.Errorf("%w: bad config object: %v", apperrors.ErrTranslationFailed, err)
	}

	// The compiler escapes every free-text value; screening with
	// libinjection on top catches a model that has been steered into
	// emitting attack strings as "team names".
	if hits := sql.CheckFreeTextFilters(cfg.FreeTextValues()); len(hits) > 0 {
		for _, hit := range hits {
			s.logger.Warn("rejected filter value",
				zap.String("column", hit.Column),
				zap.String("fingerprint", hit.Fingerprint))
		}
		return nil, fmt.Errorf("%w: filter value rejected", apperrors.ErrTranslationFailed)
	}

	return &TranslationResult{Config: &cfg, Usage: usage}, nil
}

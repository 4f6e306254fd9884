package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"go.uber.org/zap"
)

// AnalysisUnavailableMessage is shown when the assistant cannot be reached for an analysis
const AnalysisUnavailableMessage = "Sorry, I couldn't analyze the media right now. Please try again."

// ErrAnalysisUnavailable wraps transport failures of a media analysis
var ErrAnalysisUnavailable = errors.New("media analysis is unavailable")

// AnalysisOutcome is a parsed media analysis
type AnalysisOutcome struct {
	Result        model.AnalysisResult `json:"result"`
	FeedbackItems []model.FeedbackItem `json:"feedbackItems"`
	IsVideo       bool                 `json:"isVideo"`
}

// AnalysisService runs one-shot performance analyses of uploaded media
type AnalysisService struct {
	assistant      Assistant
	requestTimeout time.Duration
	logger         *zap.Logger
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(assistant Assistant, requestTimeout time.Duration, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		assistant:      assistant,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Analyze scores the media for sport. Transport failures wrap ErrAnalysisUnavailable and
// unparseable replies return an *AnalysisParseError.
func (s *AnalysisService) Analyze(ctx context.Context, media model.InlineMedia, sport string) (*AnalysisOutcome, error) {
	s.logger.Info("starting media analysis",
		zap.String("sport", sport),
		zap.String("mime_type", media.MimeType),
	)

	callCtx := context.WithoutCancel(ctx)
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, s.requestTimeout)
		defer cancel()
	}

	raw, err := s.assistant.AnalyzeMedia(callCtx, media, sport)
	if err != nil {
		s.logger.Error("media analysis failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrAnalysisUnavailable, err)
	}

	result, err := ParseAnalysis(raw)
	if err != nil {
		s.logger.Warn("failed to parse analysis reply",
			zap.Error(err),
			zap.Int("reply_length", len(raw)),
		)
		return nil, err
	}

	outcome := &AnalysisOutcome{Result: result, IsVideo: media.IsVideo()}
	if outcome.IsVideo {
		outcome.FeedbackItems = ParseVideoFeedback(result.Feedback)
	} else if result.Feedback != "" {
		outcome.FeedbackItems = []model.FeedbackItem{{Text: result.Feedback}}
	}

	s.logger.Info("media analysis completed",
		zap.String("category", result.Category),
		zap.String("score", result.Score),
		zap.Int("feedback_items", len(outcome.FeedbackItems)),
	)
	return outcome, nil
}

package genai

import (
	"context"
	"fmt"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"
)

const (
	videoFeedbackInstruction = "For videos, provide specific, timestamped feedback. List each piece of feedback as a bullet point " +
		"in the 'Feedback' section, like '- [MM:SS] - [Your feedback for this moment]'."
	imageFeedbackInstruction = "For images, the feedback should be a concise paragraph."
)

// analysisPrompt asks for the four-label reply format
func analysisPrompt(sport string, video bool) string {
	feedbackInstruction := imageFeedbackInstruction
	if video {
		feedbackInstruction = videoFeedbackInstruction
	}

	return fmt.Sprintf(`You are an advanced AI sports coach capable of analyzing human motion from videos or images across multiple sports.

Your task:
1. The user has selected the sport: "%s".
2. Analyze the athlete's form, technique, and body alignment from the uploaded media for this sport.
3. Provide:
   - A score from 0–100 evaluating their overall form.
   - Personalized feedback (2–3 sentences) on what they did well and what to improve. %s
   - A short improvement tip or micro plan (1 line).

4. Format your answer exactly as follows, with no extra text or explanations before or after:

Category: %s
Score: [XX/100]
Feedback: [Your feedback here]
Improvement Tip: [1 short actionable suggestion]`, sport, feedbackInstruction, sport)
}

// AnalyzeMedia scores an image or video in a single, history-free request
func (c *Client) AnalyzeMedia(ctx context.Context, media model.InlineMedia, sport string) (string, error) {
	c.logger.Info("requesting media analysis",
		zap.String("sport", sport),
		zap.String("mime_type", media.MimeType),
		zap.Int("encoded_size", len(media.Base64Data)),
	)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.analysisModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			userMessage(analysisPrompt(sport, media.IsVideo()), &media),
		},
	}

	reply, err := c.complete(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to analyze media: %w", err)
	}
	return reply, nil
}

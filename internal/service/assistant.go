package service

import (
	"context"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
)

// Assistant is the generative language service the coach delegates to
type Assistant interface {
	// NewChat opens a multi-turn chat. No network traffic happens until the first Send.
	NewChat(instruction string, schema *model.OutputSchema) Chat
	// AnalyzeMedia scores an uploaded image or video in a single call.
	AnalyzeMedia(ctx context.Context, media model.InlineMedia, sport string) (string, error)
}

// Chat is one assistant-side dialogue that remembers its own history
type Chat interface {
	Send(ctx context.Context, text string, media *model.InlineMedia) (string, error)
}

package genai

import (
	"context"
	"sync"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/service"
	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/openai/openai-go/v3"
)

var _ service.Assistant = (*Client)(nil)

// chat keeps the instruction, optional reply schema and history of one dialogue.
// History only grows when an exchange succeeds.
type chat struct {
	client      *Client
	instruction string
	schema      *model.OutputSchema

	mu      sync.Mutex
	history []openai.ChatCompletionMessageParamUnion
}

// NewChat opens a chat. Nothing is sent until the first turn.
func (c *Client) NewChat(instruction string, schema *model.OutputSchema) service.Chat {
	return &chat{
		client:      c,
		instruction: instruction,
		schema:      schema,
	}
}

func (ch *chat) Send(ctx context.Context, text string, media *model.InlineMedia) (string, error) {
	user := userMessage(text, media)

	ch.mu.Lock()
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(ch.history)+2)
	messages = append(messages, openai.SystemMessage(ch.instruction))
	messages = append(messages, ch.history...)
	messages = append(messages, user)
	ch.mu.Unlock()

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(ch.client.chatModel),
		Messages: messages,
	}
	if ch.schema != nil {
		params.ResponseFormat = responseFormat(ch.schema)
	}

	reply, err := ch.client.complete(ctx, params)
	if err != nil {
		return "", err
	}

	ch.mu.Lock()
	ch.history = append(ch.history, user, openai.AssistantMessage(reply))
	ch.mu.Unlock()
	return reply, nil
}

// userMessage bundles text with optional inline media
func userMessage(text string, media *model.InlineMedia) openai.ChatCompletionMessageParamUnion {
	if media == nil {
		return openai.UserMessage(text)
	}
	return openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(text),
		mediaPart(*media),
	})
}

// mediaPart sends images as image_url parts and everything else as file parts
func mediaPart(media model.InlineMedia) openai.ChatCompletionContentPartUnionParam {
	if media.IsVideo() {
		return openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
			FileData: openai.String(media.DataURL()),
			Filename: openai.String("performance" + extension(media.MimeType)),
		})
	}
	return openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
		URL: media.DataURL(),
	})
}

func responseFormat(schema *model.OutputSchema) openai.ChatCompletionNewParamsResponseFormatUnion {
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:        schema.Name,
				Description: openai.String(schema.Description),
				Schema:      schema.Schema,
				Strict:      openai.Bool(true),
			},
		},
	}
}

func extension(mimeType string) string {
	switch mimeType {
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	case "video/webm":
		return ".webm"
	default:
		return ""
	}
}

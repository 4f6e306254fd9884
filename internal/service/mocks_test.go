package service

import (
	"context"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/stretchr/testify/mock"
)

// MockAssistant is a mock implementation of Assistant
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) NewChat(instruction string, schema *model.OutputSchema) Chat {
	args := m.Called(instruction, schema)
	return args.Get(0).(Chat)
}

func (m *MockAssistant) AnalyzeMedia(ctx context.Context, media model.InlineMedia, sport string) (string, error) {
	args := m.Called(ctx, media, sport)
	return args.String(0), args.Error(1)
}

// MockChat is a mock implementation of Chat
type MockChat struct {
	mock.Mock
}

func (m *MockChat) Send(ctx context.Context, text string, media *model.InlineMedia) (string, error) {
	args := m.Called(ctx, text, media)
	return args.String(0), args.Error(1)
}

// newMockAssistant returns an assistant whose every chat is chat
func newMockAssistant(chat *MockChat) *MockAssistant {
	a := new(MockAssistant)
	a.On("NewChat", mock.Anything, mock.Anything).Return(chat)
	return a
}

func mustContext(module model.Module, sport string, persona model.Persona, aux model.Auxiliary) model.ModuleContext {
	mc, err := model.NewModuleContext(module, sport, persona, aux)
	if err != nil {
		panic(err)
	}
	return mc
}

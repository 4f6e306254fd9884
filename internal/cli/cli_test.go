package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/service"
	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAssistant is a mock implementation of service.Assistant
type mockAssistant struct {
	mock.Mock
}

func (m *mockAssistant) NewChat(instruction string, schema *model.OutputSchema) service.Chat {
	args := m.Called(instruction, schema)
	return args.Get(0).(service.Chat)
}

func (m *mockAssistant) AnalyzeMedia(ctx context.Context, media model.InlineMedia, sport string) (string, error) {
	args := m.Called(ctx, media, sport)
	return args.String(0), args.Error(1)
}

// mockChat is a mock implementation of service.Chat
type mockChat struct {
	mock.Mock
}

func (m *mockChat) Send(ctx context.Context, text string, media *model.InlineMedia) (string, error) {
	args := m.Called(ctx, text, media)
	return args.String(0), args.Error(1)
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func run(t *testing.T, assistant service.Assistant, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(func() (*Deps, error) {
		return &Deps{
			Assistant: assistant,
			Baseline:  service.DashboardBaseline{Performance: 85, Exercise: 92, Diet: 78, Recovery: 95, Streak: 15},
			Logger:    zap.NewNop(),
		}, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "media.bin")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestVersionCmd(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	defer SetVersionInfo("dev", "none", "unknown")

	root := NewRootCmd(func() (*Deps, error) { return nil, errors.New("not needed") })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "coachctl 1.2.3")
}

func TestChatCmd_GeneralConversation(t *testing.T) {
	chat := new(mockChat)
	assistant := new(mockAssistant)
	assistant.On("NewChat", mock.Anything, (*model.OutputSchema)(nil)).Return(chat)
	chat.On("Send", mock.Anything, "how do I improve my serve?", (*model.InlineMedia)(nil)).Return("Toss higher.", nil)

	out, err := run(t, assistant, "\nhow do I improve my serve?\n/quit\n", "chat", "--sport", "Tennis")
	require.NoError(t, err)

	assert.Contains(t, out, "Coach: ")
	assert.Contains(t, out, "Coach: Toss higher.")
	chat.AssertNumberOfCalls(t, "Send", 1)
}

func TestChatCmd_ExercisePlanChecklist(t *testing.T) {
	chat := new(mockChat)
	assistant := new(mockAssistant)
	assistant.On("NewChat", mock.Anything, mock.Anything).Return(chat)
	chat.On("Send", mock.Anything, "plan", mock.Anything).
		Return(`{"exercises":[{"name":"Squats","detail":"3x12"},{"name":"Plank","detail":"60s"}],"coachMessage":"Here you go"}`, nil)

	out, err := run(t, assistant, "/plan\nplan\n/done 2\n/done 9\n", "chat", "--module", "exercise", "--sport", "Running")
	require.NoError(t, err)

	assert.Contains(t, out, "No plan yet")
	assert.Contains(t, out, "Coach: Here you go")
	assert.Contains(t, out, "[ ] 1. Squats - 3x12")
	assert.Contains(t, out, "[x] 2. Plank - 60s")
	assert.Contains(t, out, "1/2 done")
	assert.Contains(t, out, "error:")
}

func TestChatCmd_ModuleNotReady(t *testing.T) {
	assistant := new(mockAssistant)

	_, err := run(t, assistant, "", "chat", "--module", "diet", "--sport", "Cycling")
	assert.ErrorIs(t, err, model.ErrMissingBodyStats)

	_, err = run(t, assistant, "", "chat", "--module", "yoga", "--sport", "Cycling")
	assert.Error(t, err)

	assistant.AssertNotCalled(t, "NewChat", mock.Anything, mock.Anything)
}

func TestChatCmd_DietSendsBodyImageOnce(t *testing.T) {
	chat := new(mockChat)
	assistant := new(mockAssistant)
	assistant.On("NewChat", mock.Anything, mock.Anything).Return(chat)
	chat.On("Send", mock.Anything, "first", mock.MatchedBy(func(m *model.InlineMedia) bool {
		return m != nil && m.MimeType == "image/png"
	})).Return(`{"meals":{"breakfast":"Oats","lunch":"Rice","dinner":"Fish"},"coachMessage":"Eat well"}`, nil)
	chat.On("Send", mock.Anything, "second", (*model.InlineMedia)(nil)).Return(`{"meals":null,"coachMessage":"Still good"}`, nil)

	image := writeFile(t, pngHeader)
	out, err := run(t, assistant, "first\nsecond\n", "chat", "--module", "diet", "--sport", "Cycling",
		"--height", "180cm", "--weight", "75kg", "--body-image", image)
	require.NoError(t, err)

	assert.Contains(t, out, "Breakfast")
	assert.Contains(t, out, "Coach: Still good")
	chat.AssertExpectations(t)
}

func TestAnalyzeCmd(t *testing.T) {
	assistant := new(mockAssistant)
	assistant.On("AnalyzeMedia", mock.Anything, mock.Anything, "Swimming").
		Return("Category: Swimming\nScore: 82\nFeedback: Good rotation.\nImprovement Tip: Extend your reach.", nil)
	path := writeFile(t, pngHeader)

	out, err := run(t, assistant, "", "analyze", path, "--sport", "Swimming")
	require.NoError(t, err)
	assert.Contains(t, out, "Score:           82/100")
	assert.Contains(t, out, "Good rotation.")

	out, err = run(t, assistant, "", "analyze", path, "--sport", "Swimming", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"score": "82/100"`)
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	assistant := new(mockAssistant)
	assistant.On("AnalyzeMedia", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("boom"))

	_, err := run(t, assistant, "", "analyze", writeFile(t, []byte("just text")), "--sport", "Swimming")
	assert.ErrorIs(t, err, service.ErrUnsupportedMedia)

	_, err = run(t, assistant, "", "analyze", writeFile(t, pngHeader), "--sport", "Swimming")
	assert.ErrorIs(t, err, service.ErrAnalysisUnavailable)

	_, err = run(t, assistant, "", "analyze", filepath.Join(t.TempDir(), "missing.png"), "--sport", "Swimming")
	assert.Error(t, err)
}

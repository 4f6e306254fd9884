package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApologyMessage replaces the assistant reply when a send fails
const ApologyMessage = "Oops! Something went wrong. Please try again."

// PlanHandler receives every plan parsed from a structured reply. It runs while the
// session lock is held, so a plan is never delivered after Dispose or Initialize
// returns; it must not call back into the session.
type PlanHandler func(plan model.Plan)

// SendResult is the outcome of one user turn
type SendResult struct {
	UserTurn      model.Turn
	AssistantTurn model.Turn
	Plan          *model.Plan
	// Failed is set when the assistant call failed and the apology was shown instead.
	Failed bool
}

// ConversationSession owns one multi-turn dialogue for a module context
type ConversationSession struct {
	id             string
	mc             model.ModuleContext
	instruction    string
	schema         *model.OutputSchema
	assistant      Assistant
	onPlan         PlanHandler
	requestTimeout time.Duration
	logger         *zap.Logger

	mu           sync.Mutex
	chat         Chat
	turns        []model.Turn
	busy         bool
	mediaPending bool
	epoch        uint64
	disposed     bool
}

// NewConversationSession creates and initializes a session for mc
func NewConversationSession(mc model.ModuleContext, assistant Assistant, onPlan PlanHandler, requestTimeout time.Duration, logger *zap.Logger) *ConversationSession {
	instruction, schema := BuildContext(mc)
	s := &ConversationSession{
		id:             uuid.New().String(),
		mc:             mc,
		instruction:    instruction,
		schema:         schema,
		assistant:      assistant,
		onPlan:         onPlan,
		requestTimeout: requestTimeout,
		logger:         logger.With(zap.String("module", string(mc.Module))),
	}
	s.Initialize()
	return s
}

// Initialize discards the turn log and starts over with the module greeting.
// Replies still in flight from before the call are dropped when they arrive.
func (s *ConversationSession) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.chat = s.assistant.NewChat(s.instruction, s.schema)
	s.turns = []model.Turn{newTurn(model.SenderAssistant, Greeting(s.mc))}
	s.busy = false
	s.mediaPending = s.mc.FirstTurnMedia() != nil

	s.logger.Info("conversation session initialized",
		zap.String("session_id", s.id),
		zap.String("sport", s.mc.Sport),
		zap.String("persona", string(s.mc.Persona)),
		zap.Bool("first_turn_media", s.mediaPending),
	)
}

// SendUserTurn appends the user turn, asks the assistant and appends its reply.
// The text is kept as typed; whitespace-only input is rejected.
// Only one send may be in flight; the caller's cancellation does not abort the call.
func (s *ConversationSession) SendUserTurn(ctx context.Context, text string) (*SendResult, error) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil, ErrSessionDisposed
	}
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		return nil, ErrEmptyTurn
	}
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	userTurn := newTurn(model.SenderUser, text)
	s.turns = append(s.turns, userTurn)
	s.busy = true
	epoch := s.epoch
	chat := s.chat

	var media *model.InlineMedia
	if s.mediaPending {
		media = s.mc.FirstTurnMedia()
		s.mediaPending = false
	}
	s.mu.Unlock()

	s.logger.Info("sending user turn",
		zap.String("session_id", s.id),
		zap.Int("text_length", len(text)),
		zap.Bool("with_media", media != nil),
	)

	callCtx := context.WithoutCancel(ctx)
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, s.requestTimeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := chat.Send(callCtx, text, media)
	result := &SendResult{UserTurn: userTurn}

	var reply string
	if err != nil {
		s.logger.Error("assistant call failed",
			zap.String("session_id", s.id),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		reply = ApologyMessage
		result.Failed = true
	} else {
		s.logger.Info("assistant reply received",
			zap.String("session_id", s.id),
			zap.Duration("duration", time.Since(start)),
			zap.Int("reply_length", len(raw)),
		)
		reply, result.Plan = s.interpret(raw)
	}

	s.mu.Lock()
	if s.disposed || epoch != s.epoch {
		s.mu.Unlock()
		s.logger.Info("dropping stale assistant reply", zap.String("session_id", s.id))
		return nil, ErrSessionDisposed
	}
	result.AssistantTurn = newTurn(model.SenderAssistant, reply)
	s.turns = append(s.turns, result.AssistantTurn)
	s.busy = false
	if result.Plan != nil && s.onPlan != nil {
		s.onPlan(*result.Plan)
	}
	s.mu.Unlock()

	return result, nil
}

// interpret turns a raw reply into display text and, for plan modules, a plan
func (s *ConversationSession) interpret(raw string) (string, *model.Plan) {
	if !s.mc.Module.HasPlan() {
		return raw, nil
	}

	parsed, err := ParsePlan(s.mc.Module, raw)
	switch {
	case err == nil && parsed.Items != nil:
		return parsed.Message, &model.Plan{Module: s.mc.Module, Items: parsed.Items}
	case err == nil:
		return parsed.Message, nil
	case errors.Is(err, ErrIncompletePlan):
		s.logger.Warn("structured reply carried an incomplete plan",
			zap.String("session_id", s.id),
			zap.Error(err),
		)
		return parsed.Message, nil
	default:
		s.logger.Warn("structured reply is not valid JSON, showing raw text",
			zap.String("session_id", s.id),
			zap.Int("reply_length", len(raw)),
			zap.Error(err),
		)
		return raw, nil
	}
}

// Dispose retires the session; any reply still in flight is dropped
func (s *ConversationSession) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	s.busy = false
	s.logger.Info("conversation session disposed", zap.String("session_id", s.id))
}

// ID returns the session identifier
func (s *ConversationSession) ID() string {
	return s.id
}

// Context returns the module context the session was built from
func (s *ConversationSession) Context() model.ModuleContext {
	return s.mc
}

// Instruction returns the behavioral instruction sent with every request
func (s *ConversationSession) Instruction() string {
	return s.instruction
}

// Turns returns a copy of the turn log in chat order
func (s *ConversationSession) Turns() []model.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]model.Turn, len(s.turns))
	copy(turns, s.turns)
	return turns
}

// Busy reports whether a reply is awaited
func (s *ConversationSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Disposed reports whether the session has been retired
func (s *ConversationSession) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

func newTurn(sender model.Sender, text string) model.Turn {
	return model.Turn{
		ID:     uuid.New().String(),
		Sender: sender,
		Text:   text,
	}
}

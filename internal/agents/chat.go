package agents

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	adksession "google.golang.org/adk/session"
	"google.golang.org/genai"

	"hermes/internal/metrics"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// TurnOutput is the result of one conversation turn.
type TurnOutput struct {
	Response     string
	InputTokens  int
	OutputTokens int
	Duration     time.Duration
}

// ChatSession drives a multi-turn conversation with the agent tree.
// One session maps to one ADK session id, so the agents keep state
// (including delegation context) across turns.
type ChatSession struct {
	agent     agent.Agent
	runner    *runner.Runner
	userID    string
	sessionID string

	log *logger.Logger
}

// NewChatSession wires the agent into an ADK runner with an in-memory
// session service.
func NewChatSession(ag agent.Agent, userID string) (*ChatSession, error) {
	runnerInstance, err := runner.New(runner.Config{
		AppName:        "hermes",
		Agent:          ag,
		SessionService: adksession.InMemoryService(),
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInternal, "create runner: %v", err)
	}

	sessionID := uuid.New().String()
	return &ChatSession{
		agent:     ag,
		runner:    runnerInstance,
		userID:    userID,
		sessionID: sessionID,
		log:       logger.Get().With("component", "chat_session", "session", sessionID),
	}, nil
}

// SessionID returns the ADK session identifier for this conversation.
func (s *ChatSession) SessionID() string {
	return s.sessionID
}

// Send submits one user message and collects the final agent response.
// Partial streaming chunks are skipped; the returned text is the
// concatenation of the final response's text parts.
func (s *ChatSession) Send(ctx context.Context, message string) (*TurnOutput, error) {
	start := time.Now()

	userContent := genai.NewContentFromText(message, genai.RoleUser)
	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeSSE,
	}

	var response strings.Builder
	inputTokens := 0
	outputTokens := 0
	turnDone := false

	for event, err := range s.runner.Run(ctx, s.userID, s.sessionID, userContent, runConfig) {
		if err != nil {
			metrics.AgentTurns.WithLabelValues(s.agent.Name(), "error").Inc()
			return nil, errors.Wrapf(errors.ErrInternal, "agent run: %v", err)
		}
		if event == nil {
			continue
		}

		if event.LLMResponse.Partial {
			continue
		}

		if event.UsageMetadata != nil {
			inputTokens += int(event.UsageMetadata.PromptTokenCount)
			outputTokens += int(event.UsageMetadata.CandidatesTokenCount)
		}

		if event.LLMResponse.Content != nil {
			for _, part := range event.LLMResponse.Content.Parts {
				if part.FunctionCall != nil {
					s.log.Debugw("Tool call", "agent", event.Author, "tool", part.FunctionCall.Name)
				}
			}
		}

		if event.TurnComplete && event.IsFinalResponse() {
			if event.LLMResponse.Content != nil {
				for _, part := range event.LLMResponse.Content.Parts {
					if part.Text != "" {
						response.WriteString(part.Text)
					}
				}
			}
			turnDone = true
			break
		}
	}

	if !turnDone {
		metrics.AgentTurns.WithLabelValues(s.agent.Name(), "error").Inc()
		return nil, errors.Wrap(errors.ErrInternal, "agent produced no final response")
	}

	metrics.AgentTurns.WithLabelValues(s.agent.Name(), "success").Inc()
	metrics.AgentTokens.WithLabelValues(s.agent.Name(), "input").Add(float64(inputTokens))
	metrics.AgentTokens.WithLabelValues(s.agent.Name(), "output").Add(float64(outputTokens))

	duration := time.Since(start)
	s.log.Infow("Turn complete",
		"duration", duration,
		"input_tokens", inputTokens,
		"output_tokens", outputTokens,
	)

	return &TurnOutput{
		Response:     response.String(),
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Duration:     duration,
	}, nil
}

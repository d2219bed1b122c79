package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"branchbook/models"

	"go.uber.org/zap"
)

const (
	completionTemperature = 0.2
	completionMaxTokens   = 400
	defaultHistoryTurns   = 8
	defaultCallTimeout    = 15 * time.Second
)

var (
	datePhrases = []string{
		"koji je danas datum", "koji je datum", "današnji datum", "danasnji datum",
		"koji je danas dan", "what is today's date", "what's the date", "today's date",
	}
	timePhrases = []string{
		"koliko je sati", "koje je sada vreme", "tačno vreme", "tacno vreme",
		"what time is it", "current time",
	}
)

// Orchestrator answers messages the rule matcher missed by calling the
// completion service. Respond always returns a well-formed BotResponse.
type Orchestrator struct {
	completer    Completer
	history      HistoryStore
	branches     BranchLister
	faqs         FAQLister
	now          func() time.Time
	loc          *time.Location
	timeout      time.Duration
	historyTurns int
	logger       *zap.Logger
}

// OrchestratorOptions wires the orchestrator. Only Completer is required.
type OrchestratorOptions struct {
	Completer    Completer
	History      HistoryStore
	Branches     BranchLister
	FAQs         FAQLister
	Now          func() time.Time
	Location     *time.Location
	Timeout      time.Duration
	HistoryTurns int
	Logger       *zap.Logger
}

func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	o := &Orchestrator{
		completer:    opts.Completer,
		history:      opts.History,
		branches:     opts.Branches,
		faqs:         opts.FAQs,
		now:          opts.Now,
		loc:          opts.Location,
		timeout:      opts.Timeout,
		historyTurns: opts.HistoryTurns,
		logger:       opts.Logger,
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.loc == nil {
		o.loc = time.UTC
	}
	if o.timeout <= 0 {
		o.timeout = defaultCallTimeout
	}
	if o.historyTurns <= 0 {
		o.historyTurns = defaultHistoryTurns
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

func (o *Orchestrator) Respond(ctx context.Context, in TurnInput) (resp models.BotResponse) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("assistant panicked", zap.Any("recover", r))
			resp = upstreamFallback()
		}
	}()

	if resp, ok := o.deterministic(in.Message); ok {
		return resp
	}

	var history []models.Turn
	if o.history != nil {
		turns, err := o.history.Recent(ctx, in.SessionID, o.historyTurns)
		if err != nil {
			o.logger.Warn("chat history unavailable", zap.String("sessionID", in.SessionID), zap.Error(err))
		}
		if len(turns) > o.historyTurns {
			turns = turns[len(turns)-o.historyTurns:]
		}
		history = buildHistory(turns)
	}

	req := models.CompletionRequest{
		System:      systemPrompt,
		Messages:    buildMessages(o.buildContext(ctx), in.State, history, in.Message),
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		JSONMode:    true,
	}

	raw, err := o.complete(ctx, req)
	if err != nil {
		o.logger.Warn("completion failed", zap.Error(err))
		return upstreamFallback()
	}

	if outcome := ParseCompletion(raw); outcome.Parsed() {
		return Normalize(outcome.Fields)
	}

	o.logger.Info("completion was not JSON, requesting repair", zap.Int("rawLen", len(raw)))
	repaired, err := o.complete(ctx, repairRequest(raw))
	if err != nil {
		o.logger.Warn("repair call failed", zap.Error(err))
		return terminalFallback(raw)
	}
	if outcome := ParseCompletion(repaired); outcome.Parsed() {
		return Normalize(outcome.Fields)
	}
	return terminalFallback(raw)
}

func (o *Orchestrator) complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	if o.completer == nil {
		return "", fmt.Errorf("no completion service configured")
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return o.completer.Complete(ctx, req)
}

func repairRequest(raw string) models.CompletionRequest {
	return models.CompletionRequest{
		System:      systemPrompt,
		Messages:    []models.Turn{{Role: models.RoleUserMessage, Content: repairPrompt + raw}},
		Temperature: 0,
		MaxTokens:   completionMaxTokens,
		JSONMode:    true,
	}
}

// deterministic answers date and time questions from the local clock.
func (o *Orchestrator) deterministic(message string) (models.BotResponse, bool) {
	msg := strings.ToLower(message)
	now := o.now().In(o.loc)
	switch {
	case containsAny(msg, datePhrases):
		return models.BotResponse{Intent: IntentDateTime, Reply: "Danas je " + now.Format("02.01.2006.")}, true
	case containsAny(msg, timePhrases):
		return models.BotResponse{Intent: IntentDateTime, Reply: "Trenutno je " + now.Format("15:04") + "."}, true
	}
	return models.BotResponse{}, false
}

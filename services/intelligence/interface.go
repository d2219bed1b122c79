// File: services/intelligence/interface.go
package ai

import (
	"context"

	"branchbook/models"
)

// Intents the assistant may answer with. Anything else normalizes to IntentUnknown.
const (
	IntentGreeting         = "greeting"
	IntentBranchesHours    = "branches_hours"
	IntentBranchesList     = "branches_list"
	IntentAppointmentsHelp = "appointments_help"
	IntentAppointmentSlots = "appointments_slots"
	IntentFXRate           = "fx_rate"
	IntentDocsRequired     = "docs_required"
	IntentWeather          = "weather"
	IntentDateTime         = "date_time"
	IntentFAQ              = "faq"
	IntentGeneral          = "general"
	IntentUnknown          = "unknown"
)

// AllowedIntents is the closed set a completion may return.
var AllowedIntents = []string{
	IntentGreeting,
	IntentBranchesHours,
	IntentBranchesList,
	IntentAppointmentsHelp,
	IntentAppointmentSlots,
	IntentFXRate,
	IntentDocsRequired,
	IntentWeather,
	IntentFAQ,
	IntentGeneral,
	IntentUnknown,
}

// Completer is the external completion service. Implementations return the
// raw text of the first candidate.
type Completer interface {
	Complete(ctx context.Context, req models.CompletionRequest) (string, error)
}

// BranchLister supplies branches ordered by city then name.
type BranchLister interface {
	List(ctx context.Context, limit int) ([]models.Branch, error)
}

// FAQLister supplies active FAQ entries.
type FAQLister interface {
	ListActive(ctx context.Context, limit int) ([]models.FAQEntry, error)
}

// WeatherFetcher performs the out-of-process weather lookup.
type WeatherFetcher interface {
	Current(ctx context.Context) (*models.Weather, error)
}

// HistoryStore yields the recent turns of a chat session, oldest first.
type HistoryStore interface {
	Recent(ctx context.Context, sessionID string, limit int) ([]models.Turn, error)
	Push(ctx context.Context, sessionID string, turns ...models.Turn) error
}

// Assistant answers a chat turn that the rule matcher did not handle.
type Assistant interface {
	Respond(ctx context.Context, turn TurnInput) models.BotResponse
}

// TurnInput is everything the orchestrator needs to answer one message.
type TurnInput struct {
	SessionID string
	Message   string
	State     map[string]any
}

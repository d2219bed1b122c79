package ai

import (
	"context"
	"fmt"
	"strings"

	"branchbook/models"

	"go.uber.org/zap"
)

// RulePriority is the order in which rule categories are tried. The first
// category whose keywords occur in the message answers it.
var RulePriority = []string{
	IntentBranchesHours,
	IntentBranchesList,
	IntentDocsRequired,
	IntentAppointmentsHelp,
	IntentWeather,
}

const (
	replyHours = "Filijale rade radnim danima od 08:00 do 16:00."
	replyDocs  = "Potrebna dokumentacija zavisi od usluge. " +
		"Za otvaranje računa obično je potrebna lična karta, " +
		"a za kredite i dodatna finansijska dokumentacija."
	replyAppointments = "Termin se zakazuje izborom filijale po adresi, " +
		"a zatim dostupnog slobodnog termina."
	replyNoBranches      = "Trenutno nema dostupnih filijala."
	replyBranchesFailed  = "Spisak filijala trenutno nije dostupan. Pokušajte ponovo kasnije."
	replyWeatherFailed   = "Trenutno ne mogu da dobijem podatke o vremenu."
	branchesInMatchReply = 5
)

type ruleHandler func(ctx context.Context, msg string) (models.BotResponse, error)

// Rule binds a keyword set to the handler producing its reply. Fallback is
// returned when the handler fails.
type Rule struct {
	Intent   string
	Keywords []string
	Handler  ruleHandler
	Fallback string
}

// Matcher is the keyword-driven FAQ layer answered without the completion service.
type Matcher struct {
	rules  []Rule
	logger *zap.Logger
}

func NewMatcher(branches BranchLister, weather WeatherFetcher, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	byIntent := map[string]Rule{
		IntentBranchesHours: {
			Keywords: []string{"radno vreme", "radno vrijeme", "kada rade", "radite", "radite li"},
			Handler:  fixedReply(IntentBranchesHours, replyHours),
			Fallback: replyHours,
		},
		IntentBranchesList: {
			Keywords: []string{"filijale", "poslovnice", "gde se nalazite", "adresa"},
			Handler:  branchesReply(branches),
			Fallback: replyBranchesFailed,
		},
		IntentDocsRequired: {
			Keywords: []string{"dokument", "papiri", "šta mi treba", "sta mi treba"},
			Handler:  fixedReply(IntentDocsRequired, replyDocs),
			Fallback: replyDocs,
		},
		IntentAppointmentsHelp: {
			Keywords: []string{"termin", "zakaz", "rezerv"},
			Handler:  fixedReply(IntentAppointmentsHelp, replyAppointments),
			Fallback: replyAppointments,
		},
		IntentWeather: {
			Keywords: []string{"vremenska prognoza", "prognoza", "temperatura", "koliko je stepeni", "napolju", "weather"},
			Handler:  weatherReply(weather),
			Fallback: replyWeatherFailed,
		},
	}

	rules := make([]Rule, 0, len(RulePriority))
	for _, intent := range RulePriority {
		r := byIntent[intent]
		r.Intent = intent
		rules = append(rules, r)
	}
	return &Matcher{rules: rules, logger: logger}
}

// Rules returns the rules in evaluation order.
func (m *Matcher) Rules() []Rule {
	return m.rules
}

// Match returns the reply of the first rule whose keywords occur in message.
// ok is false when no rule matched and the message should go to the assistant.
func (m *Matcher) Match(ctx context.Context, message string) (resp models.BotResponse, ok bool) {
	msg := strings.ToLower(message)
	for _, rule := range m.rules {
		if !containsAny(msg, rule.Keywords) {
			continue
		}
		return m.run(ctx, rule, msg), true
	}
	return models.BotResponse{}, false
}

func (m *Matcher) run(ctx context.Context, rule Rule, msg string) (resp models.BotResponse) {
	fallback := models.BotResponse{Intent: rule.Intent, Reply: rule.Fallback, Link: ""}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("faq rule panicked", zap.String("intent", rule.Intent), zap.Any("recover", r))
			resp = fallback
		}
	}()

	out, err := rule.Handler(ctx, msg)
	if err != nil {
		m.logger.Warn("faq rule failed", zap.String("intent", rule.Intent), zap.Error(err))
		return fallback
	}
	return out
}

func containsAny(msg string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

func fixedReply(intent, reply string) ruleHandler {
	return func(context.Context, string) (models.BotResponse, error) {
		return models.BotResponse{Intent: intent, Reply: reply, Link: ""}, nil
	}
}

func branchesReply(branches BranchLister) ruleHandler {
	return func(ctx context.Context, _ string) (models.BotResponse, error) {
		list, err := branches.List(ctx, branchesInMatchReply)
		if err != nil {
			return models.BotResponse{}, err
		}
		if len(list) == 0 {
			return models.BotResponse{Intent: IntentBranchesList, Reply: replyNoBranches}, nil
		}
		lines := make([]string, 0, len(list))
		for _, b := range list {
			lines = append(lines, fmt.Sprintf("%s, %s", b.City, b.Address))
		}
		reply := "Naše filijale se nalaze na sledećim adresama: " + strings.Join(lines, "; ") + "."
		return models.BotResponse{Intent: IntentBranchesList, Reply: reply}, nil
	}
}

func weatherReply(weather WeatherFetcher) ruleHandler {
	return func(ctx context.Context, _ string) (models.BotResponse, error) {
		w, err := weather.Current(ctx)
		if err != nil {
			return models.BotResponse{}, err
		}
		reply := fmt.Sprintf("Trenutno je %.0f°C u gradu %s (subjektivni osećaj %.0f°C).", w.Temperature, w.City, w.FeelsLike)
		return models.BotResponse{Intent: IntentWeather, Reply: reply}, nil
	}
}

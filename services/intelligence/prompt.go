package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"branchbook/models"

	"go.uber.org/zap"
)

const (
	historyTurnChars = 500
	contextBranches  = 10
	contextFAQs      = 10
	faqAnswerChars   = 120
)

var systemPrompt = `Ti si bankarski chatbot. Vrati ISKLJUČIVO jedan validan JSON objekat, bez ikakvog teksta van njega:
{
  "intent": "` + strings.Join(AllowedIntents, "|") + `",
  "reply": "kratak i koristan odgovor",
  "link": "opciono"
}`

const repairPrompt = `Prethodni odgovor nije bio validan JSON. Pretvori sledeći tekst u JEDAN validan JSON objekat
sa ključevima "intent", "reply" i "link" prema istoj šemi. Vrati samo JSON.

Tekst:
`

// normalizeTurn collapses whitespace and caps the turn length.
func normalizeTurn(s string) string {
	return truncateRunes(strings.Join(strings.Fields(s), " "), historyTurnChars)
}

// buildHistory converts stored turns to completion turns, dropping empty ones.
func buildHistory(turns []models.Turn) []models.Turn {
	out := make([]models.Turn, 0, len(turns))
	for _, t := range turns {
		content := normalizeTurn(t.Content)
		if content == "" {
			continue
		}
		role := t.Role
		if role != models.RoleAssistantMessage {
			role = models.RoleUserMessage
		}
		out = append(out, models.Turn{Role: role, Content: content})
	}
	return out
}

// buildContext renders branch and FAQ listings as free text. Lookup errors
// only shrink the context.
func (o *Orchestrator) buildContext(ctx context.Context) string {
	var parts []string

	if o.branches != nil {
		branches, err := o.branches.List(ctx, contextBranches)
		if err != nil {
			o.logger.Warn("context: branch listing failed", zap.Error(err))
		}
		if len(branches) > 0 {
			lines := make([]string, 0, len(branches))
			for _, b := range branches {
				lines = append(lines, fmt.Sprintf("- %s (%s): %s–%s", b.Name, b.City, b.OpenTime(), b.CloseTime()))
			}
			parts = append(parts, "Filijale (top 10):\n"+strings.Join(lines, "\n"))
		}
	}

	if o.faqs != nil {
		faqs, err := o.faqs.ListActive(ctx, contextFAQs)
		if err != nil {
			o.logger.Warn("context: faq listing failed", zap.Error(err))
		}
		if len(faqs) > 0 {
			lines := make([]string, 0, len(faqs))
			for _, f := range faqs {
				lines = append(lines, fmt.Sprintf("- Q: %s | A: %s...", f.Question, truncateRunes(f.Answer, faqAnswerChars)))
			}
			parts = append(parts, "FAQ (top 10):\n"+strings.Join(lines, "\n"))
		}
	}

	return strings.Join(parts, "\n\n")
}

// buildMessages lays out system context, state, history and the new message.
func buildMessages(contextText string, state map[string]any, history []models.Turn, message string) []models.Turn {
	var msgs []models.Turn
	if contextText != "" {
		msgs = append(msgs, models.Turn{Role: "system", Content: contextText})
	}
	if len(state) > 0 {
		if b, err := json.Marshal(state); err == nil {
			msgs = append(msgs, models.Turn{Role: "system", Content: "Stanje: " + string(b)})
		}
	}
	msgs = append(msgs, history...)
	msgs = append(msgs, models.Turn{Role: models.RoleUserMessage, Content: strings.TrimSpace(message)})
	return msgs
}

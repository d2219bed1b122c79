package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"branchbook/models"
)

func newTestOrchestrator(c Completer, h HistoryStore) *Orchestrator {
	loc := time.FixedZone("CET", 3600)
	return NewOrchestrator(OrchestratorOptions{
		Completer: c,
		History:   h,
		Branches:  &stubBranches{branches: testBranches()},
		Now:       func() time.Time { return time.Date(2026, 3, 4, 9, 5, 0, 0, loc) },
		Location:  loc,
		Timeout:   50 * time.Millisecond,
	})
}

func TestRespondParsesEmbeddedJSON(t *testing.T) {
	c := &scriptedCompleter{replies: []string{`Sure! {"intent":"general","reply":"hi","link":""} thanks`}}
	resp := newTestOrchestrator(c, nil).Respond(context.Background(), TurnInput{SessionID: "s", Message: "hello"})
	if resp != (models.BotResponse{Intent: "general", Reply: "hi", Link: ""}) {
		t.Errorf("got %+v", resp)
	}
	if c.calls() != 1 {
		t.Errorf("expected one call, got %d", c.calls())
	}
	req := c.requests[0]
	if !req.JSONMode || req.Temperature != completionTemperature || req.MaxTokens != completionMaxTokens {
		t.Errorf("unexpected request settings %+v", req)
	}
	if !strings.Contains(req.Messages[0].Content, "Centar") {
		t.Error("branch context should be included")
	}
}

func TestRespondRepairsMalformedOutput(t *testing.T) {
	c := &scriptedCompleter{replies: []string{
		"Naravno, evo odgovora bez JSON-a.",
		`{"intent":"faq","reply":"popravljeno"}`,
	}}
	resp := newTestOrchestrator(c, nil).Respond(context.Background(), TurnInput{Message: "pitanje"})
	if resp.Intent != "faq" || resp.Reply != "popravljeno" {
		t.Errorf("got %+v", resp)
	}
	if c.calls() != 2 {
		t.Fatalf("expected repair call, got %d calls", c.calls())
	}
	if !strings.Contains(c.requests[1].Messages[0].Content, "Naravno, evo odgovora bez JSON-a.") {
		t.Error("repair request should carry the raw text")
	}
}

func TestRespondTerminalFallback(t *testing.T) {
	c := &scriptedCompleter{replies: []string{"samo tekst", "i dalje tekst"}}
	resp := newTestOrchestrator(c, nil).Respond(context.Background(), TurnInput{Message: "pitanje"})
	if resp.Intent != IntentGeneral || resp.Reply != "samo tekst" {
		t.Errorf("got %+v", resp)
	}

	c = &scriptedCompleter{replies: []string{"samo tekst"}, errs: []error{nil, errors.New("boom")}}
	resp = newTestOrchestrator(c, nil).Respond(context.Background(), TurnInput{Message: "pitanje"})
	if resp.Intent != IntentGeneral || resp.Reply != "samo tekst" {
		t.Errorf("repair failure: got %+v", resp)
	}
}

func TestRespondUpstreamFailure(t *testing.T) {
	tests := []struct {
		name string
		c    Completer
	}{
		{"error", &scriptedCompleter{errs: []error{errors.New("503")}}},
		{"timeout", &scriptedCompleter{block: true}},
		{"no completer", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newTestOrchestrator(tt.c, nil).Respond(context.Background(), TurnInput{Message: "pitanje"})
			if resp != upstreamFallback() {
				t.Errorf("got %+v", resp)
			}
		})
	}
}

func TestRespondDateAndTime(t *testing.T) {
	c := &scriptedCompleter{}
	o := newTestOrchestrator(c, nil)

	resp := o.Respond(context.Background(), TurnInput{Message: "Koji je danas datum?"})
	if resp.Intent != IntentDateTime || resp.Reply != "Danas je 04.03.2026." {
		t.Errorf("date: got %+v", resp)
	}
	resp = o.Respond(context.Background(), TurnInput{Message: "Koliko je sati?"})
	if resp.Intent != IntentDateTime || resp.Reply != "Trenutno je 09:05." {
		t.Errorf("time: got %+v", resp)
	}
	if c.calls() != 0 {
		t.Errorf("date/time should not call the completion service")
	}
}

// unboundedHistory ignores the requested limit.
type unboundedHistory struct{ turns []models.Turn }

func (u unboundedHistory) Recent(context.Context, string, int) ([]models.Turn, error) {
	return u.turns, nil
}

func (u unboundedHistory) Push(context.Context, string, ...models.Turn) error { return nil }

func TestRespondHistoryWindow(t *testing.T) {
	long := "t07" + strings.Repeat("ž", 600)
	var turns []models.Turn
	for i := 0; i < 12; i++ {
		role := models.RoleUserMessage
		if i%2 == 1 {
			role = models.RoleAssistantMessage
		}
		content := fmt.Sprintf("t%02d", i)
		if i == 7 {
			content = long
		}
		turns = append(turns, models.Turn{Role: role, Content: content})
	}

	stores := map[string]HistoryStore{
		"limit honoring": &memoryHistory{turns: map[string][]models.Turn{"s1": turns}},
		"limit ignoring": unboundedHistory{turns: turns},
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			c := &scriptedCompleter{replies: []string{`{"intent":"general","reply":"ok"}`}}
			newTestOrchestrator(c, store).Respond(context.Background(), TurnInput{SessionID: "s1", Message: "sada"})

			msgs := c.requests[0].Messages
			var history []models.Turn
			for _, m := range msgs {
				if m.Role != "system" && m.Content != "sada" {
					history = append(history, m)
				}
			}
			if len(history) != defaultHistoryTurns {
				t.Fatalf("expected %d history turns, got %d", defaultHistoryTurns, len(history))
			}
			if history[0].Content != "t04" {
				t.Errorf("window should start at t04, got %q", history[0].Content)
			}
			var truncated string
			for _, h := range history {
				if strings.HasPrefix(h.Content, "t07") {
					truncated = h.Content
				}
			}
			if n := utf8.RuneCountInString(truncated); n != historyTurnChars {
				t.Errorf("long turn has %d runes, want %d", n, historyTurnChars)
			}
			if last := msgs[len(msgs)-1]; last.Content != "sada" || last.Role != models.RoleUserMessage {
				t.Errorf("current message should be last, got %+v", last)
			}
		})
	}
}

func TestRespondIncludesHistory(t *testing.T) {
	h := &memoryHistory{}
	_ = h.Push(context.Background(), "s1",
		models.Turn{Role: models.RoleUserMessage, Content: "prvo   pitanje"},
		models.Turn{Role: models.RoleAssistantMessage, Content: "prvi odgovor"},
	)
	c := &scriptedCompleter{replies: []string{`{"intent":"general","reply":"ok"}`}}
	newTestOrchestrator(c, h).Respond(context.Background(), TurnInput{SessionID: "s1", Message: "drugo"})

	msgs := c.requests[0].Messages
	n := len(msgs)
	if n < 3 {
		t.Fatalf("expected history in messages, got %d", n)
	}
	if msgs[n-3].Content != "prvo pitanje" || msgs[n-2].Role != models.RoleAssistantMessage || msgs[n-1].Content != "drugo" {
		t.Errorf("unexpected layout %+v", msgs)
	}
}

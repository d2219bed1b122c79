package ai

import (
	"strings"
	"testing"
)

func TestParseCompletionEmbeddedObject(t *testing.T) {
	out := ParseCompletion(`Sure! {"intent":"general","reply":"hi","link":""} thanks`)
	if !out.Parsed() {
		t.Fatal("expected embedded object to parse")
	}
	resp := Normalize(out.Fields)
	if resp.Intent != "general" || resp.Reply != "hi" || resp.Link != "" {
		t.Errorf("got %+v", resp)
	}
}

func TestParseCompletionStrategies(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		parsed bool
		reply  string
	}{
		{"whole", `  {"intent":"faq","reply":"ok"}  `, true, "ok"},
		{"brace in string", `x {"intent":"faq","reply":"a } b"} y`, true, "a } b"},
		{"skips bad candidate", `{not json} then {"intent":"faq","reply":"second"}`, true, "second"},
		{"nested", `pre {"intent":"faq","reply":"n","meta":{"a":1}} post`, true, "n"},
		{"array is not an object", `["a"]`, false, ""},
		{"plain text", "Zdravo, kako mogu da pomognem?", false, ""},
		{"unbalanced", `{"intent":"faq"`, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ParseCompletion(tt.raw)
			if out.Parsed() != tt.parsed {
				t.Fatalf("parsed = %v, want %v", out.Parsed(), tt.parsed)
			}
			if tt.parsed && Normalize(out.Fields).Reply != tt.reply {
				t.Errorf("reply = %q, want %q", Normalize(out.Fields).Reply, tt.reply)
			}
			if out.Raw != tt.raw {
				t.Error("raw text must be preserved")
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		intent string
		reply  string
		link   string
	}{
		{"allowed", map[string]any{"intent": "weather", "reply": "sunčano", "link": "/w"}, "weather", "sunčano", "/w"},
		{"unknown intent", map[string]any{"intent": "crypto", "reply": "x"}, IntentUnknown, "x", ""},
		{"date_time not allowed", map[string]any{"intent": "date_time", "reply": "x"}, IntentUnknown, "x", ""},
		{"empty reply", map[string]any{"intent": "faq", "reply": "  "}, IntentUnknown, apologyReply, ""},
		{"non-string reply", map[string]any{"intent": "faq", "reply": 42}, IntentUnknown, apologyReply, ""},
		{"non-string link", map[string]any{"intent": "faq", "reply": "r", "link": []any{"a"}}, "faq", "r", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.fields)
			if got.Intent != tt.intent || got.Reply != tt.reply || got.Link != tt.link {
				t.Errorf("got %+v", got)
			}
		})
	}
}

func TestTerminalFallbackTruncates(t *testing.T) {
	raw := strings.Repeat("ž", maxRawReply+50)
	got := terminalFallback(raw)
	if got.Intent != IntentGeneral {
		t.Errorf("intent = %s", got.Intent)
	}
	if n := len([]rune(got.Reply)); n != maxRawReply {
		t.Errorf("reply has %d runes, want %d", n, maxRawReply)
	}
	if terminalFallback("   ").Reply != apologyReply {
		t.Error("empty raw text should yield the apology")
	}
}

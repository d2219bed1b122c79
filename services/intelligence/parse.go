package ai

import (
	"encoding/json"
	"strings"

	"branchbook/models"
)

const (
	apologyReply = "Nažalost, trenutno nemam odgovor na to pitanje."
	capabilities = "Mogu da pomognem sa informacijama o filijalama, terminima, dokumentima i uslugama banke."
	maxRawReply  = 500
)

// ParseOutcome is either a parsed object (Fields non-nil) or the malformed raw text.
type ParseOutcome struct {
	Fields map[string]any
	Raw    string
}

func (p ParseOutcome) Parsed() bool { return p.Fields != nil }

type parseStrategy func(raw string) (map[string]any, bool)

// parseStrategies run in order; the first that yields an object wins.
var parseStrategies = []parseStrategy{
	parseWhole,
	parseEmbedded,
}

// ParseCompletion applies the parse strategies to the raw completion text.
func ParseCompletion(raw string) ParseOutcome {
	for _, strategy := range parseStrategies {
		if fields, ok := strategy(raw); ok {
			return ParseOutcome{Fields: fields, Raw: raw}
		}
	}
	return ParseOutcome{Raw: raw}
}

func parseWhole(raw string) (map[string]any, bool) {
	return decodeObject(strings.TrimSpace(raw))
}

// parseEmbedded scans for balanced {...} candidates left to right and returns
// the first one that decodes as an object. Braces inside JSON strings are ignored.
func parseEmbedded(raw string) (map[string]any, bool) {
	for start := strings.IndexByte(raw, '{'); start >= 0; {
		if end, ok := matchBrace(raw, start); ok {
			if fields, ok := decodeObject(raw[start : end+1]); ok {
				return fields, true
			}
		}
		next := strings.IndexByte(raw[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return nil, false
}

// matchBrace returns the index of the brace closing the one at start.
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func decodeObject(s string) (map[string]any, bool) {
	if s == "" || s[0] != '{' {
		return nil, false
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(s), &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

// Normalize maps a loosely typed object onto a BotResponse. Unknown intents
// become "unknown"; an empty reply becomes the apology with intent "unknown";
// a missing link becomes "". Non-string values count as missing.
func Normalize(fields map[string]any) models.BotResponse {
	intent := strings.TrimSpace(stringField(fields, "intent"))
	reply := strings.TrimSpace(stringField(fields, "reply"))
	link := strings.TrimSpace(stringField(fields, "link"))

	if !isAllowedIntent(intent) {
		intent = IntentUnknown
	}
	if reply == "" {
		reply = apologyReply
		intent = IntentUnknown
	}
	return models.BotResponse{Intent: intent, Reply: reply, Link: link}
}

// terminalFallback is the answer when nothing parsed. The raw text still
// reaches the user, truncated.
func terminalFallback(raw string) models.BotResponse {
	reply := truncateRunes(strings.TrimSpace(raw), maxRawReply)
	if reply == "" {
		reply = apologyReply
	}
	return models.BotResponse{Intent: IntentGeneral, Reply: reply, Link: ""}
}

// upstreamFallback is the answer when the completion service itself failed.
func upstreamFallback() models.BotResponse {
	return models.BotResponse{Intent: IntentGeneral, Reply: capabilities, Link: ""}
}

func stringField(fields map[string]any, key string) string {
	v, ok := fields[key].(string)
	if !ok {
		return ""
	}
	return v
}

func isAllowedIntent(intent string) bool {
	for _, allowed := range AllowedIntents {
		if intent == allowed {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

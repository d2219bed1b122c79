package models

// Turn is one role/content pair sent to the completion service.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the contract with the external completion service.
type CompletionRequest struct {
	System      string
	Messages    []Turn
	Temperature float32
	MaxTokens   int
	JSONMode    bool
}

// Weather is the result of the weather sub-lookup.
type Weather struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	City        string  `json:"city"`
}

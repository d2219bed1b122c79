package models

// FAQEntry is a curated question/answer pair used as assistant context.
type FAQEntry struct {
	Intent   string `bson:"intent" json:"intent"`
	Category string `bson:"category" json:"category"`
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
	Link     string `bson:"link" json:"link"`
	IsActive bool   `bson:"isActive" json:"is_active"`
}

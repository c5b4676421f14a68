package models

import "time"

// Product statuses. A product only moves forward through the pipeline
// (pending -> scraping -> embedding -> completed) or jumps to failed;
// retry resets failed back to pending.
const (
	StatusPending   = "pending"
	StatusScraping  = "scraping"
	StatusEmbedding = "embedding"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ProductFields is the result of one extraction pass over a product page.
// Every field is optional; missing fields stay zero values. Only a missing
// Title fails an extraction as a whole.
type ProductFields struct {
	Title           string
	Brand           string
	CurrentPrice    string
	OriginalPrice   string
	Availability    string
	Features        string
	Specifications  map[string]string
	Categories      []string
	Variants        []string
	SalesRank       string
	RelatedProducts []RelatedProduct
	ShippingInfo    []string
	Reviews         []Review
	QA              []string
}

// RelatedProduct is a related product link scraped from a product page.
type RelatedProduct struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Review is a single customer review scraped from a product page.
type Review struct {
	Title        string
	Text         string
	Rating       string
	CustomerName string
	HelpfulVotes string
	ReviewDate   *time.Time
}

// ChatTurn is one turn of chat history passed to the responder.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContextChunk is a retrieved chunk with its similarity score,
// fed to the LLM as grounding for an answer.
type ContextChunk struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// QAResult is the responder's answer together with the context it used.
type QAResult struct {
	Answer        string         `json:"answer"`
	ContextChunks []ContextChunk `json:"context_chunks"`
}

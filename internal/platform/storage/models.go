package storage

import (
	"time"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a scraped Amazon product together with its pipeline state
// and vector-store linkage.
type Product struct {
	ID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	URL string    `gorm:"size:500;not null;uniqueIndex" json:"url"`

	Title          string                                `gorm:"type:text" json:"title"`
	Brand          string                                `gorm:"size:255" json:"brand"`
	CurrentPrice   string                                `gorm:"size:50" json:"current_price"`
	OriginalPrice  string                                `gorm:"size:50" json:"original_price"`
	Availability   string                                `gorm:"size:255" json:"availability"`
	Features       string                                `gorm:"type:text" json:"features"`
	Specifications datatypes.JSONType[map[string]string] `json:"specifications"`
	Categories     datatypes.JSONSlice[string]           `json:"categories"`
	Variants       datatypes.JSONSlice[string]           `json:"variants"`
	SalesRank      string                                `gorm:"type:text" json:"sales_rank"`

	RelatedProducts datatypes.JSONSlice[models.RelatedProduct] `json:"related_products"`
	ShippingInfo    datatypes.JSONSlice[string]                `json:"shipping_info"`

	// Vector store linkage.
	Namespace   string `gorm:"size:100" json:"namespace"`
	VectorCount int    `gorm:"not null;default:0" json:"vector_count"`

	// Pipeline state.
	Status       string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	TaskID       string     `gorm:"size:255" json:"task_id"`
	ErrorMessage string     `gorm:"type:text" json:"error_message"`
	ScrapedAt    *time.Time `json:"scraped_at"`

	CreatedAt time.Time `gorm:"index:idx_product_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reviews      []Review         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Questions    []QuestionAnswer `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ChatSessions []ChatSession    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName implements gorm table naming.
func (Product) TableName() string { return "product" }

// BeforeCreate assigns the product id when it is not set yet.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Review is one customer review belonging to a product. Reviews are
// created by the pipeline during a successful extraction pass and never
// updated afterward.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_review_product_created,priority:1" json:"product_id"`

	Title        string     `gorm:"type:text" json:"title"`
	Text         string     `gorm:"type:text;not null" json:"text"`
	Rating       string     `gorm:"size:20" json:"rating"`
	CustomerName string     `gorm:"size:255" json:"customer_name"`
	HelpfulVotes string     `gorm:"size:100" json:"helpful_votes"`
	ReviewDate   *time.Time `json:"review_date"`

	CreatedAt time.Time `gorm:"index:idx_review_product_created,priority:2,sort:desc" json:"created_at"`
}

// TableName implements gorm table naming.
func (Review) TableName() string { return "review" }

// BeforeCreate assigns the review id when it is not set yet.
func (r *Review) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// QuestionAnswer is a Q&A snippet scraped from a product page. The answer
// column is reserved for future curation and left empty by the pipeline.
type QuestionAnswer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`

	Question string `gorm:"type:text;not null" json:"question"`
	Answer   string `gorm:"type:text" json:"answer"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName implements gorm table naming.
func (QuestionAnswer) TableName() string { return "question_answer" }

// BeforeCreate assigns the entry id when it is not set yet.
func (q *QuestionAnswer) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// ChatSession groups chat messages about one product. SessionID is the
// externally visible identifier clients use to resume history.
type ChatSession struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`

	SessionID string `gorm:"size:100;not null;uniqueIndex" json:"session_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []ChatMessage `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName implements gorm table naming.
func (ChatSession) TableName() string { return "chat_session" }

// BeforeCreate assigns the session id when it is not set yet.
func (s *ChatSession) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ChatMessage is one append-only message in a chat session. Assistant
// messages carry the context chunks used to produce the answer.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_message_session_created,priority:1" json:"session_id"`

	Role          string                                   `gorm:"size:10;not null" json:"role"`
	Content       string                                   `gorm:"type:text;not null" json:"content"`
	ContextChunks datatypes.JSONSlice[models.ContextChunk] `json:"context_chunks"`

	CreatedAt time.Time `gorm:"index:idx_chat_message_session_created,priority:2" json:"created_at"`
}

// TableName implements gorm table naming.
func (ChatMessage) TableName() string { return "chat_message" }

// BeforeCreate assigns the message id when it is not set yet.
func (m *ChatMessage) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Quote request lifecycle statuses. The moderation flow moves a request
// forward through pending -> in_progress -> quoted -> accepted/rejected,
// with cancelled reachable from any non-terminal status.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusQuoted     = "quoted"
	StatusAccepted   = "accepted"
	StatusRejected   = "rejected"
	StatusCancelled  = "cancelled"
)

// Quote request provenance channels.
const (
	SourceWebsite = "website"
	SourcePhone   = "phone"
	SourceEmail   = "email"
	SourceAdmin   = "admin"
)

// AllStatuses lists every status value the store will persist.
var AllStatuses = []string{
	StatusPending,
	StatusInProgress,
	StatusQuoted,
	StatusAccepted,
	StatusRejected,
	StatusCancelled,
}

// allowedTransitions is the strict moderation graph. Terminal statuses have
// no outgoing edges; a same-status write is always treated as a no-op and is
// not listed here.
var allowedTransitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusQuoted, StatusCancelled},
	StatusQuoted:     {StatusAccepted, StatusRejected, StatusCancelled},
}

// IsValidStatus reports whether status is one of the six enumerated values.
func IsValidStatus(status string) bool {
	for _, s := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether status has no outgoing transitions.
func IsTerminalStatus(status string) bool {
	return status == StatusAccepted || status == StatusRejected || status == StatusCancelled
}

// CanTransition reports whether the strict moderation graph permits moving
// from one status to another. A same-status write is always permitted.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidSource reports whether source is one of the known intake channels.
func IsValidSource(source string) bool {
	switch source {
	case SourceWebsite, SourcePhone, SourceEmail, SourceAdmin:
		return true
	}
	return false
}

// QuoteRequest represents a prospective customer's request for pricing on a
// catalog service. Requester-side fields are immutable after creation; only
// the moderation fields (status, assignment, notes, audit timestamps) change
// afterwards, and only through the store's moderation update.
type QuoteRequest struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ServiceID   string `gorm:"not null;index" json:"service_id"` // catalog slug, free-form ids allowed
	ServiceName string `json:"service_name"`

	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"not null;index" json:"email"` // stored trimmed and lower-cased
	Phone        *string  `json:"phone,omitempty"`
	Requirements *string  `gorm:"type:text" json:"requirements,omitempty"`
	Budget       *float64 `gorm:"check:budget >= 0" json:"budget,omitempty"`

	Status       string     `gorm:"not null;default:'pending';index" json:"status"`
	AssignedToID *uint      `gorm:"index" json:"assigned_to_id,omitempty"` // staff user reviewing the request
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	Notes        *string    `gorm:"type:text" json:"notes,omitempty"` // internal, staff only
	QuotedAt     *time.Time `json:"quoted_at,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`

	Source    string `gorm:"not null;default:'website'" json:"source"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	UserID    *uint  `gorm:"index" json:"user_id,omitempty"` // set when the requester was logged in
	User      *User  `gorm:"foreignKey:UserID" json:"-"`

	AttachmentS3Key *string `json:"attachment_s3_key,omitempty"`
	AttachmentURL   *string `gorm:"-" json:"attachment_url,omitempty"` // computed, presigned

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the QuoteRequest model
func (QuoteRequest) TableName() string {
	return "quote_requests"
}

// Package stores contains the persistence layer for quote requests. All
// moderation writes go through this package so the status machine and its
// audit timestamps cannot be bypassed by a controller.
package stores

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/NguemsPrince/experience-tech-plateforme-sub002/models"
)

var (
	// ErrNotFound is returned when an id does not resolve to a quote request.
	ErrNotFound = errors.New("quote request not found")

	// ErrInvalidStatus is returned when a write attempts to persist a status
	// outside the six enumerated values.
	ErrInvalidStatus = errors.New("invalid quote request status")

	// ErrInvalidTransition is returned under the strict policy when a status
	// change is not an edge of the moderation graph.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrInvalidSource is returned when a create names an unknown intake channel.
	ErrInvalidSource = errors.New("invalid quote request source")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// QuoteRequestStore persists and mutates quote requests.
type QuoteRequestStore struct {
	db     *gorm.DB
	strict bool
}

// NewQuoteRequestStore creates a store. When strict is true the moderation
// graph is enforced on status changes; when false any enumerated status may
// overwrite any other (the legacy platform behavior).
func NewQuoteRequestStore(db *gorm.DB, strict bool) *QuoteRequestStore {
	return &QuoteRequestStore{db: db, strict: strict}
}

// Create persists a new quote request. Status defaults to pending and source
// to website; the id and timestamps are assigned by the database. The input
// is expected to be validated and sanitized already.
func (s *QuoteRequestStore) Create(qr *models.QuoteRequest) error {
	if qr.Status == "" {
		qr.Status = models.StatusPending
	}
	if qr.Source == "" {
		qr.Source = models.SourceWebsite
	}
	if !models.IsValidStatus(qr.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, qr.Status)
	}
	if !models.IsValidSource(qr.Source) {
		return fmt.Errorf("%w: %q", ErrInvalidSource, qr.Source)
	}

	if err := s.db.Create(qr).Error; err != nil {
		return fmt.Errorf("failed to create quote request: %w", err)
	}
	return nil
}

// FindByID returns a single quote request with its assignee preloaded.
func (s *QuoteRequestStore) FindByID(id uint) (*models.QuoteRequest, error) {
	var qr models.QuoteRequest
	if err := s.db.Preload("AssignedTo").First(&qr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load quote request %d: %w", id, err)
	}
	return &qr, nil
}

// ListFilters narrows and pages the moderation listing. Zero values mean
// "no filter"; Page and Limit fall back to sane defaults.
type ListFilters struct {
	Status    string
	ServiceID string
	Search    string // matches name, email or service id, case-insensitive
	Page      int
	Limit     int
}

// Pagination describes the page of results returned by FindByFilters.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// QuoteRequestPage is one page of the moderation listing.
type QuoteRequestPage struct {
	QuoteRequests []models.QuoteRequest `json:"quoteRequests"`
	Pagination    Pagination            `json:"pagination"`
}

// FindByFilters returns a page of quote requests for the moderation UI,
// newest first.
func (s *QuoteRequestStore) FindByFilters(f ListFilters) (*QuoteRequestPage, error) {
	if f.Status != "" && !models.IsValidStatus(f.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	query := s.db.Model(&models.QuoteRequest{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.ServiceID != "" {
		query = query.Where("service_id = ?", f.ServiceID)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"lower(name) LIKE ? OR lower(email) LIKE ? OR lower(service_id) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count quote requests: %w", err)
	}

	var requests []models.QuoteRequest
	if err := query.
		Preload("AssignedTo").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list quote requests: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &QuoteRequestPage{
		QuoteRequests: requests,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// ModerationUpdate carries the staff-permitted mutations. Nil fields are left
// untouched. An AssignedToID of 0 clears the assignment.
type ModerationUpdate struct {
	Status       *string
	Notes        *string
	AssignedToID *uint
}

// UpdateModeration applies a moderation update inside a transaction and
// returns the refreshed record. Status changes honor the configured policy
// and maintain the set-once audit timestamps:
//
//   - respondedAt is set the first time the request leaves pending
//   - quotedAt is set the first time the request becomes quoted
//   - resolvedAt is set the first time the request reaches a terminal status
//
// Requester-side fields are never touched here.
func (s *QuoteRequestStore) UpdateModeration(id uint, upd ModerationUpdate) (*models.QuoteRequest, error) {
	var updated models.QuoteRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var qr models.QuoteRequest
		if err := tx.First(&qr, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load quote request %d: %w", id, err)
		}

		if upd.Status != nil {
			if err := s.applyStatus(&qr, *upd.Status); err != nil {
				return err
			}
		}
		if upd.Notes != nil {
			notes := *upd.Notes
			qr.Notes = &notes
		}
		if upd.AssignedToID != nil {
			if *upd.AssignedToID == 0 {
				qr.AssignedTo = nil
				qr.AssignedToID = nil
			} else {
				assignee := *upd.AssignedToID
				qr.AssignedToID = &assignee
			}
		}

		if err := tx.Save(&qr).Error; err != nil {
			return fmt.Errorf("failed to update quote request %d: %w", id, err)
		}
		updated = qr
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reload outside the transaction so the assignee is preloaded.
	return s.FindByID(updated.ID)
}

// applyStatus mutates the status and audit timestamps in memory. A
// same-status write is a no-op and never disturbs existing timestamps.
func (s *QuoteRequestStore) applyStatus(qr *models.QuoteRequest, newStatus string) error {
	if !models.IsValidStatus(newStatus) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}
	if newStatus == qr.Status {
		return nil
	}
	if s.strict && !models.CanTransition(qr.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, qr.Status, newStatus)
	}

	now := time.Now()
	if qr.RespondedAt == nil && qr.Status == models.StatusPending {
		qr.RespondedAt = &now
	}
	if qr.QuotedAt == nil && newStatus == models.StatusQuoted {
		qr.QuotedAt = &now
	}
	if qr.ResolvedAt == nil && models.IsTerminalStatus(newStatus) {
		qr.ResolvedAt = &now
	}
	qr.Status = newStatus
	return nil
}

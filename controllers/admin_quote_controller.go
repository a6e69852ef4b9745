package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NguemsPrince/experience-tech-plateforme-sub002/config"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/models"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/services"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/stores"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/utils"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/validation"
)

// ModerationPayload represents the request body for updating a quote request
type ModerationPayload struct {
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
	AssignedToID *uint   `json:"assignedToId"`
}

// ManualQuotePayload represents the request body for creating a quote request
// on behalf of a requester who reached out by phone or email
type ManualQuotePayload struct {
	ServiceID    string   `json:"serviceId"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        *string  `json:"phone"`
	Requirements *string  `json:"requirements"`
	Budget       *float64 `json:"budget"`
	Source       string   `json:"source"`
}

// ListQuoteRequests handles GET /api/v1/admin/quote-requests with optional
// status, serviceId, search and pagination query parameters
func ListQuoteRequests(c *gin.Context) {
	filters := stores.ListFilters{
		Status:    strings.TrimSpace(c.Query("status")),
		ServiceID: strings.TrimSpace(c.Query("serviceId")),
		Search:    strings.TrimSpace(c.Query("search")),
	}

	if page := c.Query("page"); page != "" {
		if parsed, err := strconv.Atoi(page); err == nil {
			filters.Page = parsed
		}
	}
	if limit := c.Query("limit"); limit != "" {
		if parsed, err := strconv.Atoi(limit); err == nil {
			filters.Limit = parsed
		}
	}

	if filters.Status != "" && !models.IsValidStatus(filters.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown status filter: " + filters.Status,
			},
		})
		return
	}

	page, err := quoteStore().FindByFilters(filters)
	if err != nil {
		log.Printf("Failed to list quote requests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to retrieve quote requests",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    page,
	})
}

// GetQuoteRequest handles GET /api/v1/admin/quote-requests/:id
func GetQuoteRequest(c *gin.Context) {
	id, ok := parseQuoteID(c)
	if !ok {
		return
	}

	qr, err := quoteStore().FindByID(id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "QUOTE_REQUEST_NOT_FOUND",
					"message": "Quote request not found",
				},
			})
			return
		}
		log.Printf("Failed to fetch quote request %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to retrieve quote request",
			},
		})
		return
	}

	attachPresignedURL(qr)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    qr,
	})
}

// UpdateQuoteRequest handles PUT /api/v1/admin/quote-requests/:id - the
// moderation operation. Status changes go through the transition rules in the
// store; notes and assignment can change on their own.
func UpdateQuoteRequest(c *gin.Context) {
	id, ok := parseQuoteID(c)
	if !ok {
		return
	}

	var payload ModerationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if payload.Status == nil && payload.Notes == nil && payload.AssignedToID == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "No fields to update",
			},
		})
		return
	}

	if payload.Notes != nil {
		if fieldErrors := validation.ValidateModerationNotes(*payload.Notes); len(fieldErrors) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "One or more fields are invalid",
				},
				"errors": fieldErrors,
			})
			return
		}
		notes := utils.SanitizeMultiline(*payload.Notes)
		payload.Notes = &notes
	}

	store := quoteStore()

	// Fetch first so a missing record is reported before transition errors
	// and so we can tell afterwards whether the status actually changed
	existing, err := store.FindByID(id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "QUOTE_REQUEST_NOT_FOUND",
					"message": "Quote request not found",
				},
			})
			return
		}
		log.Printf("Failed to fetch quote request %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to retrieve quote request",
			},
		})
		return
	}
	previousStatus := existing.Status

	updated, err := store.UpdateModeration(id, stores.ModerationUpdate{
		Status:       payload.Status,
		Notes:        payload.Notes,
		AssignedToID: payload.AssignedToID,
	})
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Unknown status: " + *payload.Status,
				},
			})
		case errors.Is(err, stores.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TRANSITION",
					"message": "Cannot move quote request from " + previousStatus + " to " + *payload.Status,
				},
			})
		case errors.Is(err, stores.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "QUOTE_REQUEST_NOT_FOUND",
					"message": "Quote request not found",
				},
			})
		default:
			log.Printf("Failed to update quote request %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update quote request",
				},
			})
		}
		return
	}

	// Notify the requester only on a real status change; same-status
	// updates are no-ops from their point of view
	if updated.Status != previousStatus {
		if notifications := services.GetNotificationService(); notifications != nil {
			notifications.NotifyRequesterOfStatusChange(updated)
		}
	}

	attachPresignedURL(updated)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// CreateQuoteRequest handles POST /api/v1/admin/quote-requests - manual
// intake for requests that arrive by phone, email or walk-in
func CreateQuoteRequest(c *gin.Context) {
	var payload ManualQuotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	serviceID := strings.TrimSpace(payload.ServiceID)
	fieldErrors := validation.ValidateQuoteRequest(validation.QuoteRequestInput{
		ServiceID:    serviceID,
		Name:         payload.Name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Requirements: payload.Requirements,
		Budget:       payload.Budget,
	})
	source := strings.TrimSpace(payload.Source)
	if source != "" && !models.IsValidSource(source) {
		fieldErrors = append(fieldErrors, validation.FieldError{
			Field:   "source",
			Message: "Unknown source: " + source,
		})
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "One or more fields are invalid",
			},
			"errors": fieldErrors,
		})
		return
	}

	qr := models.QuoteRequest{
		ServiceID: serviceID,
		Name:      utils.SanitizeText(payload.Name),
		Email:     utils.NormalizeEmail(payload.Email),
		Budget:    payload.Budget,
		Source:    source,
	}
	if qr.Source == "" {
		qr.Source = models.SourceAdmin
	}
	if payload.Phone != nil && strings.TrimSpace(*payload.Phone) != "" {
		phone := utils.SanitizePhone(*payload.Phone)
		qr.Phone = &phone
	}
	if payload.Requirements != nil && strings.TrimSpace(*payload.Requirements) != "" {
		requirements := utils.SanitizeMultiline(*payload.Requirements)
		qr.Requirements = &requirements
	}

	// Same display-name resolution as the public intake path
	var service models.Service
	if err := config.GetDB().Where("slug = ? AND active = ?", serviceID, true).First(&service).Error; err == nil {
		qr.ServiceName = service.Name
	}

	if err := quoteStore().Create(&qr); err != nil {
		log.Printf("Failed to create quote request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create quote request",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    qr,
	})
}

// parseQuoteID parses the :id path parameter, writing the error response on
// failure
func parseQuoteID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Quote request ID must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// attachPresignedURL fills the transient AttachmentURL field when the record
// has an attachment and the attachment service is configured
func attachPresignedURL(qr *models.QuoteRequest) {
	if qr.AttachmentS3Key == nil || *qr.AttachmentS3Key == "" {
		return
	}
	attachments := services.GetAttachmentService()
	if attachments == nil {
		return
	}
	url, err := attachments.GetAttachmentURL(*qr.AttachmentS3Key)
	if err != nil {
		log.Printf("Failed to generate attachment URL for quote request %d: %v", qr.ID, err)
		return
	}
	qr.AttachmentURL = &url
}

package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NguemsPrince/experience-tech-plateforme-sub002/config"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/middleware"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/models"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/services"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/stores"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/utils"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/validation"
)

// QuoteRequestPayload represents the request body for submitting a quote request
type QuoteRequestPayload struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         *string  `json:"phone"`
	Requirements  *string  `json:"requirements"`
	Budget        *float64 `json:"budget"`
	AttachmentKey *string  `json:"attachmentKey"`
}

// quoteStore builds the store with the configured transition policy. Strict
// is the default when no configuration was loaded.
func quoteStore() *stores.QuoteRequestStore {
	strict := true
	if cfg := config.GetConfig(); cfg != nil {
		strict = cfg.StrictTransitions()
	}
	return stores.NewQuoteRequestStore(config.GetDB(), strict)
}

// SubmitQuoteRequest handles POST /api/v1/services/:serviceId/quote - public
// quote request intake.
//
// The order matters: validation runs over the raw payload first and aborts
// before any side effect; sanitization and normalization happen next; the
// record is persisted; only then is the admin notification queued. A failed
// notification never fails the request.
func SubmitQuoteRequest(c *gin.Context) {
	serviceID := strings.TrimSpace(c.Param("serviceId"))

	// Parse request body
	var payload QuoteRequestPayload
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

	// Run every field rule before touching anything else; all failures are
	// reported together
	fieldErrors := validation.ValidateQuoteRequest(validation.QuoteRequestInput{
		ServiceID:    serviceID,
		Name:         payload.Name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Requirements: payload.Requirements,
		Budget:       payload.Budget,
	})
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

	// Sanitize free-text fields and normalize the email
	qr := models.QuoteRequest{
		ServiceID: serviceID,
		Name:      utils.SanitizeText(payload.Name),
		Email:     utils.NormalizeEmail(payload.Email),
		Budget:    payload.Budget,
		Source:    models.SourceWebsite,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if payload.Phone != nil && strings.TrimSpace(*payload.Phone) != "" {
		phone := utils.SanitizePhone(*payload.Phone)
		qr.Phone = &phone
	}
	if payload.Requirements != nil && strings.TrimSpace(*payload.Requirements) != "" {
		requirements := utils.SanitizeMultiline(*payload.Requirements)
		qr.Requirements = &requirements
	}
	if payload.AttachmentKey != nil && strings.TrimSpace(*payload.AttachmentKey) != "" {
		key := strings.TrimSpace(*payload.AttachmentKey)
		qr.AttachmentS3Key = &key
	}

	// Resolve the display name from the catalog when the slug is known;
	// free-form service ids stay legal and fall back to the raw id
	db := config.GetDB()
	var service models.Service
	if err := db.Where("slug = ? AND active = ?", serviceID, true).First(&service).Error; err == nil {
		qr.ServiceName = service.Name
	}

	// Link the request to an account when the caller was authenticated
	if auth0ID, err := middleware.GetUserID(c); err == nil {
		var user models.User
		if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err == nil {
			qr.UserID = &user.ID
		}
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

	// Best-effort admin notification, queued after the record exists
	if notifications := services.GetNotificationService(); notifications != nil {
		notifications.NotifyAdminOfNewQuote(&qr)
	}

	// Minimal receipt; requester contact details are never echoed back
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"quoteId":   qr.ID,
			"serviceId": qr.ServiceID,
			"timestamp": qr.CreatedAt,
		},
	})
}

package controllers

import (
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguemsPrince/experience-tech-plateforme-sub002/config"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/models"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/utils"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/validation"
)

// ServicePayload represents the request body for creating or updating a
// catalog entry
type ServicePayload struct {
	Slug       string  `json:"slug"`
	Name       string  `json:"name"`
	Summary    *string `json:"summary"`
	Category   *string `json:"category"`
	PriceRange *string `json:"priceRange"`
	Active     *bool   `json:"active"`
}

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ListServices handles GET /api/v1/services - the public catalog. Only
// active entries are returned; staff see everything via ?all=true.
func ListServices(c *gin.Context) {
	db := config.GetDB()

	query := db.Order("category, name")
	if c.Query("all") != "true" {
		query = query.Where("active = ?", true)
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}

	var entries []models.Service
	if err := query.Find(&entries).Error; err != nil {
		log.Printf("Failed to list services: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to retrieve services",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// GetService handles GET /api/v1/services/:serviceId (lookup by slug)
func GetService(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("serviceId"))

	var service models.Service
	if err := config.GetDB().Where("slug = ?", slug).First(&service).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SERVICE_NOT_FOUND",
					"message": "Service not found",
				},
			})
			return
		}
		log.Printf("Failed to fetch service %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to retrieve service",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// CreateService handles POST /api/v1/admin/services
func CreateService(c *gin.Context) {
	var payload ServicePayload
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

	fieldErrors := validateServicePayload(&payload)
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

	service := models.Service{
		Slug:   strings.TrimSpace(payload.Slug),
		Name:   utils.SanitizeText(payload.Name),
		Active: true,
	}
	if payload.Summary != nil {
		service.Summary = utils.SanitizeMultiline(*payload.Summary)
	}
	if payload.Category != nil {
		service.Category = utils.SanitizeText(*payload.Category)
	}
	if payload.PriceRange != nil {
		service.PriceRange = utils.SanitizeText(*payload.PriceRange)
	}
	if payload.Active != nil {
		service.Active = *payload.Active
	}

	if err := config.GetDB().Create(&service).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SLUG_EXISTS",
					"message": "A service with this slug already exists",
				},
			})
			return
		}
		log.Printf("Failed to create service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create service",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    service,
	})
}

// UpdateService handles PUT /api/v1/admin/services/:serviceId
func UpdateService(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("serviceId"))

	var payload ServicePayload
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

	db := config.GetDB()
	var service models.Service
	if err := db.Where("slug = ?", slug).First(&service).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SERVICE_NOT_FOUND",
					"message": "Service not found",
				},
			})
			return
		}
		log.Printf("Failed to fetch service %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to retrieve service",
			},
		})
		return
	}

	// Partial update; the slug itself is immutable once created
	updates := map[string]interface{}{}
	if payload.Name != "" {
		name := utils.SanitizeText(payload.Name)
		if len(name) < validation.MinNameLength {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "One or more fields are invalid",
				},
				"errors": []validation.FieldError{{Field: "name", Message: "Name is too short"}},
			})
			return
		}
		updates["name"] = name
	}
	if payload.Summary != nil {
		updates["summary"] = utils.SanitizeMultiline(*payload.Summary)
	}
	if payload.Category != nil {
		updates["category"] = utils.SanitizeText(*payload.Category)
	}
	if payload.PriceRange != nil {
		updates["price_range"] = utils.SanitizeText(*payload.PriceRange)
	}
	if payload.Active != nil {
		updates["active"] = *payload.Active
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "No fields to update",
			},
		})
		return
	}

	if err := db.Model(&service).Updates(updates).Error; err != nil {
		log.Printf("Failed to update service %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update service",
			},
		})
		return
	}

	// Refetch so the response carries the updated timestamps
	if err := db.Where("slug = ?", slug).First(&service).Error; err != nil {
		log.Printf("Failed to refetch service %s: %v", slug, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

func validateServicePayload(payload *ServicePayload) []validation.FieldError {
	var fieldErrors []validation.FieldError

	slug := strings.TrimSpace(payload.Slug)
	if slug == "" {
		fieldErrors = append(fieldErrors, validation.FieldError{Field: "slug", Message: "Slug is required"})
	} else if !slugRegex.MatchString(slug) {
		fieldErrors = append(fieldErrors, validation.FieldError{Field: "slug", Message: "Slug must be lowercase letters, digits and hyphens"})
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		fieldErrors = append(fieldErrors, validation.FieldError{Field: "name", Message: "Name is required"})
	} else if len(name) < validation.MinNameLength {
		fieldErrors = append(fieldErrors, validation.FieldError{Field: "name", Message: "Name is too short"})
	}

	return fieldErrors
}

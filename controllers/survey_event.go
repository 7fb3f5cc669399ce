package controllers

import (
	"errors"
	"net/http"
	"strings"
	"userpulse-backend/config"
	"userpulse-backend/models"
	"userpulse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateSurveyEventInput struct {
	Name            string       `json:"name" binding:"required"`
	Channel         string       `json:"channel" binding:"required,oneof=email sms web"`
	DelayMinutes    int          `json:"delayMinutes"`
	TemplateSubject string       `json:"templateSubject"`
	TemplateBody    string       `json:"templateBody"`
	BrandID         *uuid.UUID   `json:"brandId"`
	Metadata        models.JSONB `json:"metadata"`
}

type UpdateSurveyEventInput struct {
	Name            *string      `json:"name"`
	Channel         *string      `json:"channel"`
	DelayMinutes    *int         `json:"delayMinutes"`
	TemplateSubject *string      `json:"templateSubject"`
	TemplateBody    *string      `json:"templateBody"`
	Metadata        models.JSONB `json:"metadata"`
	IsActive        *bool        `json:"isActive"`
}

// CreateSurveyEvent configures a new survey trigger
func CreateSurveyEvent(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input CreateSurveyEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	event := models.SurveyEvent{
		ID:              uuid.New(),
		AccountID:       accountUUID,
		BrandID:         input.BrandID,
		Name:            input.Name,
		EventKey:        newEventKey(input.Name),
		Channel:         input.Channel,
		DelayMinutes:    input.DelayMinutes,
		TemplateSubject: input.TemplateSubject,
		TemplateBody:    input.TemplateBody,
		Metadata:        input.Metadata,
		IsActive:        true,
	}
	if event.Metadata == nil {
		event.Metadata = models.JSONB{}
	}
	if event.TemplateBody == "" {
		event.TemplateBody = "Hi {{first_name}}, how likely are you to recommend us? {{survey_url}}"
	}

	if err := config.DB.Create(&event).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create survey event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

// newEventKey derives a unique public embed key from the event name
func newEventKey(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, slug)
	return slug + "-" + uuid.NewString()[:8]
}

// GetSurveyEvents lists the account's survey events
func GetSurveyEvents(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var events []models.SurveyEvent
	if err := config.DB.Where("account_id = ?", accountUUID).
		Order("created_at").Find(&events).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve survey events")
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetSurveyEvent retrieves one survey event by ID
func GetSurveyEvent(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	eventUUID, ok := pathUUID(c, "id", "survey event")
	if !ok {
		return
	}

	var event models.SurveyEvent
	if err := config.DB.Where("account_id = ? AND id = ?", accountUUID, eventUUID).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Survey event not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, event)
}

// UpdateSurveyEvent updates an existing survey event
func UpdateSurveyEvent(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	eventUUID, ok := pathUUID(c, "id", "survey event")
	if !ok {
		return
	}

	var input UpdateSurveyEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var event models.SurveyEvent
	if err := config.DB.Where("account_id = ? AND id = ?", accountUUID, eventUUID).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Survey event not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		event.Name = *input.Name
	}
	if input.Channel != nil {
		event.Channel = *input.Channel
	}
	if input.DelayMinutes != nil {
		event.DelayMinutes = *input.DelayMinutes
	}
	if input.TemplateSubject != nil {
		event.TemplateSubject = *input.TemplateSubject
	}
	if input.TemplateBody != nil {
		event.TemplateBody = *input.TemplateBody
	}
	if input.Metadata != nil {
		event.Metadata = input.Metadata
	}
	if input.IsActive != nil {
		event.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&event).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update survey event")
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteSurveyEvent deactivates and removes a survey event
func DeleteSurveyEvent(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	eventUUID, ok := pathUUID(c, "id", "survey event")
	if !ok {
		return
	}

	result := config.DB.Where("account_id = ? AND id = ?", accountUUID, eventUUID).
		Delete(&models.SurveyEvent{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete survey event")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Survey event not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Survey event deleted successfully"})
}

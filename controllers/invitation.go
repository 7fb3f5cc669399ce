package controllers

import (
	"errors"
	"net/http"
	"userpulse-backend/config"
	"userpulse-backend/models"
	"userpulse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateInvitationsInput queues survey invitations for a set of contacts.
// Channel defaults to each contact's preferred channel, falling back to the
// event's channel.
type CreateInvitationsInput struct {
	SurveyEventID uuid.UUID   `json:"surveyEventId" binding:"required"`
	ContactIDs    []uuid.UUID `json:"contactIds" binding:"required,min=1"`
}

// CreateInvitations queues pending invitations; the dispatch scheduler
// picks them up.
func CreateInvitations(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input CreateInvitationsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var event models.SurveyEvent
	if err := config.DB.Where("account_id = ? AND id = ?", accountUUID, input.SurveyEventID).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Survey event not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if !event.IsActive {
		utils.RespondWithError(c, http.StatusConflict, "Survey event is inactive")
		return
	}

	var contacts []models.Contact
	if err := config.DB.Where("account_id = ? AND id IN ?", accountUUID, input.ContactIDs).
		Find(&contacts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}
	if len(contacts) != len(input.ContactIDs) {
		utils.RespondWithError(c, http.StatusNotFound, "One or more contacts not found")
		return
	}

	created := make([]models.SurveyInvitation, 0, len(contacts))
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, contact := range contacts {
			channel := contact.PreferredChannel
			if channel == "" || channel == "web" {
				channel = event.Channel
			}
			inv := models.SurveyInvitation{
				AccountID:     accountUUID,
				SurveyEventID: event.ID,
				ContactID:     contact.ID,
				Channel:       channel,
				Status:        "pending",
			}
			if err := tx.Create(&inv).Error; err != nil {
				return err
			}
			created = append(created, inv)
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invitations")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"created":     len(created),
		"invitations": created,
	})
}

// GetInvitations lists invitations, optionally filtered by event or status
func GetInvitations(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("account_id = ?", accountUUID)
	if eventID := c.Query("surveyEventId"); eventID != "" {
		eventUUID, err := uuid.Parse(eventID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid survey event ID format")
			return
		}
		query = query.Where("survey_event_id = ?", eventUUID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var invitations []models.SurveyInvitation
	if err := query.Order("created_at desc").Find(&invitations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invitations")
		return
	}

	c.JSON(http.StatusOK, invitations)
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"userpulse-backend/config"
	"userpulse-backend/models"
	"userpulse-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubmitResponseInput is the public survey answer payload. Exactly one of
// Token (from an invitation) or EventKey (from the web embed) identifies
// the survey.
type SubmitResponseInput struct {
	Token    string `json:"token"`
	EventKey string `json:"eventKey"`
	Email    string `json:"email"`
	Score    *int   `json:"score" binding:"required"`
	Comment  string `json:"comment"`
}

// SubmitResponse records a survey answer from an invitation link or the
// web embed. Public endpoint, no auth.
func SubmitResponse(c *gin.Context) {
	var input SubmitResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if *input.Score < 0 || *input.Score > 10 {
		utils.RespondWithError(c, http.StatusBadRequest, "Score must be between 0 and 10")
		return
	}

	response := models.SurveyResponse{
		Score:   *input.Score,
		Comment: input.Comment,
	}

	switch {
	case input.Token != "":
		var inv models.SurveyInvitation
		if err := config.DB.Where("token = ?", input.Token).First(&inv).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Invitation not found")
			return
		}
		response.AccountID = inv.AccountID
		response.SurveyEventID = inv.SurveyEventID
		response.ContactID = inv.ContactID
		response.Source = "invitation"

	case input.EventKey != "":
		var event models.SurveyEvent
		if err := config.DB.Where("event_key = ? AND is_active = ?", input.EventKey, true).
			First(&event).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Survey not found")
			return
		}
		contact, err := contactForEmbed(event, input.Email)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		response.AccountID = event.AccountID
		response.SurveyEventID = event.ID
		response.ContactID = contact.ID
		response.Source = "embed"

	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Either token or eventKey is required")
		return
	}

	if err := config.DB.Create(&response).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record response")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Response recorded", "id": response.ID})
}

// contactForEmbed resolves or creates the contact behind an anonymousish
// embed submission. Embed answers without an email are rejected; the
// contact list is the unit everything else hangs off.
func contactForEmbed(event models.SurveyEvent, email string) (*models.Contact, error) {
	key := utils.NormalizeEmail(&email)
	if key == "" {
		return nil, errors.New("email is required for embed responses")
	}

	var contact models.Contact
	err := config.DB.Where("account_id = ? AND LOWER(TRIM(email)) = ?", event.AccountID, key).
		First(&contact).Error
	if err == nil {
		return &contact, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New("database error")
	}

	contact = models.Contact{
		AccountID: event.AccountID,
		Email:     &email,
		Status:    "active",
		BrandID:   event.BrandID,
	}
	if err := config.DB.Create(&contact).Error; err != nil {
		return nil, errors.New("failed to create contact")
	}
	return &contact, nil
}

// GetResponses lists responses with optional score/category filters
func GetResponses(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("account_id = ?", accountUUID)
	if minScore := c.Query("minScore"); minScore != "" {
		n, err := strconv.Atoi(minScore)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid minScore")
			return
		}
		query = query.Where("score >= ?", n)
	}
	if maxScore := c.Query("maxScore"); maxScore != "" {
		n, err := strconv.Atoi(maxScore)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid maxScore")
			return
		}
		query = query.Where("score <= ?", n)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var responses []models.SurveyResponse
	if err := query.Order("created_at desc").Find(&responses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve responses")
		return
	}

	c.JSON(http.StatusOK, responses)
}

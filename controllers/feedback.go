package controllers

import (
	"net/http"
	"userpulse-backend/config"
	"userpulse-backend/models"
	"userpulse-backend/services"
	"userpulse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategorizeInput struct {
	Comment    string     `json:"comment" binding:"required"`
	ResponseID *uuid.UUID `json:"responseId"`
}

// CategorizeFeedback classifies a feedback comment via the LLM gateway and,
// when a response id is given, stores the labels on that response row.
func CategorizeFeedback(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input CategorizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	categorizer, err := services.NewCategorizeService()
	if err != nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Categorization unavailable: "+err.Error())
		return
	}

	verdict, err := categorizer.Categorize(c.Request.Context(), input.Comment)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Categorization failed: "+err.Error())
		return
	}

	if input.ResponseID != nil {
		result := config.DB.Model(&models.SurveyResponse{}).
			Where("account_id = ? AND id = ?", accountUUID, *input.ResponseID).
			Updates(map[string]interface{}{
				"category":  verdict.Category,
				"sentiment": verdict.Sentiment,
			})
		if result.Error != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store categorization")
			return
		}
		if result.RowsAffected == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Response not found")
			return
		}
	}

	c.JSON(http.StatusOK, verdict)
}

package controllers

import (
	"net/http"
	"time"
	"userpulse-backend/config"
	"userpulse-backend/models"

	"github.com/gin-gonic/gin"
)

// DashboardSummary represents the overview numbers for the admin home screen
type DashboardSummary struct {
	TotalContacts      int64   `json:"totalContacts"`
	TotalResponses     int64   `json:"totalResponses"`
	ResponsesThisMonth int64   `json:"responsesThisMonth"`
	PendingInvitations int64   `json:"pendingInvitations"`
	NPS                float64 `json:"nps"`
	Promoters          int64   `json:"promoters"`
	Passives           int64   `json:"passives"`
	Detractors         int64   `json:"detractors"`
}

// GetDashboardOverview returns contact and NPS summary numbers for the account
func GetDashboardOverview(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var summary DashboardSummary

	config.DB.Model(&models.Contact{}).Where("account_id = ?", accountUUID).
		Count(&summary.TotalContacts)
	config.DB.Model(&models.SurveyResponse{}).Where("account_id = ?", accountUUID).
		Count(&summary.TotalResponses)
	config.DB.Model(&models.SurveyInvitation{}).
		Where("account_id = ? AND status = ?", accountUUID, "pending").
		Count(&summary.PendingInvitations)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	config.DB.Model(&models.SurveyResponse{}).
		Where("account_id = ? AND created_at >= ?", accountUUID, monthStart).
		Count(&summary.ResponsesThisMonth)

	config.DB.Model(&models.SurveyResponse{}).
		Where("account_id = ? AND score >= 9", accountUUID).Count(&summary.Promoters)
	config.DB.Model(&models.SurveyResponse{}).
		Where("account_id = ? AND score BETWEEN 7 AND 8", accountUUID).Count(&summary.Passives)
	config.DB.Model(&models.SurveyResponse{}).
		Where("account_id = ? AND score <= 6", accountUUID).Count(&summary.Detractors)

	if summary.TotalResponses > 0 {
		summary.NPS = float64(summary.Promoters-summary.Detractors) /
			float64(summary.TotalResponses) * 100
	}

	c.JSON(http.StatusOK, summary)
}

package controllers

import (
	"errors"
	"net/http"
	"userpulse-backend/config"
	"userpulse-backend/models"
	"userpulse-backend/services"
	"userpulse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MergeContactsInput carries the user's choice from the duplicate review
// screen. Confirm must be true and MemberCount must match the group the
// user saw; both guard against a stale or accidental merge request.
type MergeContactsInput struct {
	PrimaryID    uuid.UUID   `json:"primaryId" binding:"required"`
	SecondaryIDs []uuid.UUID `json:"secondaryIds" binding:"required"`
	Confirm      bool        `json:"confirm"`
	MemberCount  int         `json:"memberCount"`
}

// GetDuplicateContacts recomputes duplicate groups from the account's
// current contacts. Nothing is persisted; the result is a projection.
func GetDuplicateContacts(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var contacts []models.Contact
	if err := config.DB.Where("account_id = ?", accountUUID).
		Order("created_at").Find(&contacts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}

	c.JSON(http.StatusOK, services.FindDuplicates(contacts))
}

// MergeContacts folds the chosen secondaries into the primary contact.
// Rejects unconfirmed requests before any database work.
func MergeContacts(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input MergeContactsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !input.Confirm {
		utils.RespondWithError(c, http.StatusBadRequest, "Merge requires confirmation")
		return
	}
	if input.MemberCount != 0 && input.MemberCount != len(input.SecondaryIDs)+1 {
		utils.RespondWithError(c, http.StatusConflict, "Group membership changed, review the duplicates again")
		return
	}

	merger := services.NewMergeService(config.DB)
	result, err := merger.Merge(accountUUID, input.PrimaryID, input.SecondaryIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPrimaryNotFound):
			utils.RespondWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrNoSecondaries),
			errors.Is(err, services.ErrPrimaryInSecondaries):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Merge failed: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

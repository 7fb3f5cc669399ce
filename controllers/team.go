package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
	"userpulse-backend/config"
	"userpulse-backend/models"
	"userpulse-backend/services"
	"userpulse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTeamMembers lists the account's users
func GetTeamMembers(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var users []models.User
	if err := config.DB.Where("account_id = ?", accountUUID).Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve team members")
		return
	}

	members := make([]gin.H, 0, len(users))
	for _, u := range users {
		members = append(members, gin.H{
			"id":        u.ID,
			"email":     u.Email,
			"name":      u.Name,
			"role":      u.Role,
			"isActive":  u.IsActive,
			"lastLogin": u.LastLogin,
		})
	}

	c.JSON(http.StatusOK, members)
}

type StartInvitationInput struct {
	Email string `json:"email" binding:"required,email"`
}

// StartInvitation opens a draft invitation at step 1 (recipient chosen)
func StartInvitation(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	userUUID, ok := userFromContext(c)
	if !ok {
		return
	}

	var input StartInvitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "A user with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	invitation := models.TeamInvitation{
		AccountID: accountUUID,
		InvitedBy: userUUID,
		Email:     input.Email,
		Step:      1,
		Status:    "draft",
	}
	if err := config.DB.Create(&invitation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invitation")
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

type AdvanceInvitationInput struct {
	Role    *string    `json:"role"`
	BrandID *uuid.UUID `json:"brandId"`
}

// AdvanceInvitation moves the wizard forward one step: step 2 sets the
// role, step 3 the brand scope. Each call advances exactly one step.
func AdvanceInvitation(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	invitationUUID, ok := pathUUID(c, "id", "invitation")
	if !ok {
		return
	}

	var input AdvanceInvitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var invitation models.TeamInvitation
	if err := config.DB.Where("account_id = ? AND id = ?", accountUUID, invitationUUID).
		First(&invitation).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Invitation not found")
		return
	}
	if invitation.Status != "draft" {
		utils.RespondWithError(c, http.StatusConflict, "Invitation is no longer a draft")
		return
	}

	switch invitation.Step {
	case 1:
		if input.Role == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Role is required at this step")
			return
		}
		role := strings.ToLower(*input.Role)
		if role != "admin" && role != "editor" && role != "viewer" {
			utils.RespondWithError(c, http.StatusBadRequest, "Role must be admin, editor or viewer")
			return
		}
		invitation.Role = role
		invitation.Step = 2
	case 2:
		// Brand scope is optional; nil means account-wide access
		invitation.BrandID = input.BrandID
		invitation.Step = 3
	default:
		utils.RespondWithError(c, http.StatusConflict, "Invitation is ready to send")
		return
	}

	if err := config.DB.Save(&invitation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invitation")
		return
	}

	c.JSON(http.StatusOK, invitation)
}

// SendInvitation finalizes the wizard: emails the invite link and marks
// the invitation pending. Only a completed draft (step 3) can be sent.
func SendInvitation(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	invitationUUID, ok := pathUUID(c, "id", "invitation")
	if !ok {
		return
	}

	var invitation models.TeamInvitation
	if err := config.DB.Where("account_id = ? AND id = ?", accountUUID, invitationUUID).
		First(&invitation).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Invitation not found")
		return
	}
	if invitation.Status != "draft" || invitation.Step != 3 {
		utils.RespondWithError(c, http.StatusConflict, "Invitation is not ready to send")
		return
	}

	acceptURL := fmt.Sprintf("%s/accept-invite/%s",
		strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"), invitation.Token)
	body := fmt.Sprintf("You have been invited to join UserPulse as %s.\nAccept here: %s",
		invitation.Role, acceptURL)
	if err := services.SendEmail(invitation.Email, "You're invited to UserPulse", body); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to send invitation email")
		return
	}

	expires := time.Now().Add(7 * 24 * time.Hour)
	invitation.Step = 4
	invitation.Status = "pending"
	invitation.ExpiresAt = &expires
	if err := config.DB.Save(&invitation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invitation")
		return
	}

	c.JSON(http.StatusOK, invitation)
}

// RevokeInvitation cancels a draft or pending invitation
func RevokeInvitation(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	invitationUUID, ok := pathUUID(c, "id", "invitation")
	if !ok {
		return
	}

	result := config.DB.Model(&models.TeamInvitation{}).
		Where("account_id = ? AND id = ? AND status IN ?", accountUUID, invitationUUID,
			[]string{"draft", "pending"}).
		Update("status", "revoked")
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to revoke invitation")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Invitation not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation revoked"})
}

// GetInvitationsList lists team invitations for the account
func GetInvitationsList(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var invitations []models.TeamInvitation
	if err := config.DB.Where("account_id = ?", accountUUID).
		Order("created_at desc").Find(&invitations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invitations")
		return
	}

	c.JSON(http.StatusOK, invitations)
}

type AcceptInvitationInput struct {
	Token    string `json:"token" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// AcceptInvitation redeems an invite token and creates the user. Public
// endpoint.
func AcceptInvitation(c *gin.Context) {
	var input AcceptInvitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var invitation models.TeamInvitation
	if err := config.DB.Where("token = ? AND status = ?", input.Token, "pending").
		First(&invitation).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Invitation not found")
		return
	}
	if invitation.ExpiresAt != nil && time.Now().After(*invitation.ExpiresAt) {
		config.DB.Model(&invitation).Update("status", "expired")
		utils.RespondWithError(c, http.StatusGone, "Invitation has expired")
		return
	}

	newUser := models.User{
		Email:     invitation.Email,
		Name:      input.Name,
		Password:  input.Password, // Hashed in BeforeCreate hook
		Role:      invitation.Role,
		AccountID: invitation.AccountID,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		return tx.Model(&invitation).Update("status", "accepted").Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), newUser.AccountID.String(), newUser.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Invitation accepted",
		"token":   token,
		"user": gin.H{
			"id":    newUser.ID,
			"email": newUser.Email,
			"role":  newUser.Role,
		},
	})
}

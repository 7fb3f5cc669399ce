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

// GetEmbedConfig serves the public web-embed configuration for an event
// key. No auth; this is what the embedded widget fetches.
func GetEmbedConfig(c *gin.Context) {
	eventKey := c.Param("eventKey")

	var event models.SurveyEvent
	if err := config.DB.Where("event_key = ? AND is_active = ?", eventKey, true).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Survey not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"eventKey": event.EventKey,
		"name":     event.Name,
		"question": event.TemplateBody,
		"metadata": event.Metadata,
	})
}

type CreateShareLinkInput struct {
	SurveyEventID uuid.UUID `json:"surveyEventId" binding:"required"`
	Slug          string    `json:"slug"`
}

// CreateShareLink creates a public share link for a survey event
func CreateShareLink(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input CreateShareLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var event models.SurveyEvent
	if err := config.DB.Where("account_id = ? AND id = ?", accountUUID, input.SurveyEventID).
		First(&event).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Survey event not found")
		return
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = uuid.NewString()[:8]
	}

	link := models.ShareLink{
		AccountID:     accountUUID,
		SurveyEventID: event.ID,
		Slug:          slug,
		IsActive:      true,
	}
	if err := config.DB.Create(&link).Error; err != nil {
		utils.RespondWithError(c, http.StatusConflict, "Slug already in use")
		return
	}

	c.JSON(http.StatusCreated, link)
}

// GetShareLinks lists the account's share links
func GetShareLinks(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var links []models.ShareLink
	if err := config.DB.Where("account_id = ?", accountUUID).Find(&links).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve share links")
		return
	}

	c.JSON(http.StatusOK, links)
}

// DeleteShareLink removes a share link
func DeleteShareLink(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	linkUUID, ok := pathUUID(c, "id", "share link")
	if !ok {
		return
	}

	result := config.DB.Unscoped().Where("account_id = ? AND id = ?", accountUUID, linkUUID).
		Delete(&models.ShareLink{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete share link")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Share link not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Share link deleted"})
}

// ResolveShareLink resolves a public slug to its survey and counts the hit
func ResolveShareLink(c *gin.Context) {
	slug := c.Param("slug")

	var link models.ShareLink
	if err := config.DB.Where("slug = ? AND is_active = ?", slug, true).First(&link).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Link not found")
		return
	}

	var event models.SurveyEvent
	if err := config.DB.First(&event, "id = ?", link.SurveyEventID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Survey not found")
		return
	}

	config.DB.Model(&link).Update("hits", gorm.Expr("hits + 1"))

	c.JSON(http.StatusOK, gin.H{
		"eventKey": event.EventKey,
		"name":     event.Name,
		"question": event.TemplateBody,
	})
}

type CreateSftpSourceInput struct {
	Host      string     `json:"host" binding:"required"`
	Port      int        `json:"port"`
	Username  string     `json:"username" binding:"required"`
	Password  string     `json:"password" binding:"required"`
	RemoteDir string     `json:"remoteDir"`
	BrandID   *uuid.UUID `json:"brandId"`
}

// CreateSftpSource registers an SFTP drop for contact imports
func CreateSftpSource(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input CreateSftpSourceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	source := models.SftpSource{
		AccountID: accountUUID,
		BrandID:   input.BrandID,
		Host:      input.Host,
		Port:      input.Port,
		Username:  input.Username,
		Password:  input.Password,
		RemoteDir: input.RemoteDir,
		IsActive:  true,
	}
	if source.Port == 0 {
		source.Port = 22
	}
	if source.RemoteDir == "" {
		source.RemoteDir = "/"
	}

	if err := config.DB.Create(&source).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create SFTP source")
		return
	}

	c.JSON(http.StatusCreated, source)
}

// GetSftpSources lists the account's SFTP sources
func GetSftpSources(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var sources []models.SftpSource
	if err := config.DB.Where("account_id = ?", accountUUID).Find(&sources).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve SFTP sources")
		return
	}

	c.JSON(http.StatusOK, sources)
}

// DeleteSftpSource removes an SFTP source
func DeleteSftpSource(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	sourceUUID, ok := pathUUID(c, "id", "SFTP source")
	if !ok {
		return
	}

	result := config.DB.Unscoped().Where("account_id = ? AND id = ?", accountUUID, sourceUUID).
		Delete(&models.SftpSource{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete SFTP source")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "SFTP source not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "SFTP source deleted"})
}

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

type CreateTagInput struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// CreateTag creates a new tag for the account
func CreateTag(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input CreateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.Tag
	if err := config.DB.Where("account_id = ? AND name = ?", accountUUID, input.Name).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Tag with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	tag := models.Tag{
		ID:        uuid.New(),
		AccountID: accountUUID,
		Name:      input.Name,
		Color:     input.Color,
	}

	if err := config.DB.Create(&tag).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create tag")
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// GetTags retrieves all tags for the account
func GetTags(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var tags []models.Tag
	if err := config.DB.Where("account_id = ?", accountUUID).Order("name").Find(&tags).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tags")
		return
	}

	c.JSON(http.StatusOK, tags)
}

// DeleteTag removes a tag and its contact assignments
func DeleteTag(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	tagUUID, ok := pathUUID(c, "id", "tag")
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Where("account_id = ? AND id = ?", accountUUID, tagUUID).
			First(&tag).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("tag_id = ?", tagUUID).
			Delete(&models.ContactTag{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&tag).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Tag not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete tag")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}

type AssignTagInput struct {
	TagID uuid.UUID `json:"tagId" binding:"required"`
}

// AssignTag attaches a tag to a contact. Re-assigning is a no-op.
func AssignTag(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	contactUUID, ok := pathUUID(c, "id", "contact")
	if !ok {
		return
	}

	var input AssignTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var contact models.Contact
	if err := config.DB.Where("account_id = ? AND id = ?", accountUUID, contactUUID).
		First(&contact).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		return
	}
	var tag models.Tag
	if err := config.DB.Where("account_id = ? AND id = ?", accountUUID, input.TagID).
		First(&tag).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Tag not found")
		return
	}

	var existing models.ContactTag
	if err := config.DB.Where("contact_id = ? AND tag_id = ?", contactUUID, input.TagID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}

	assignment := models.ContactTag{ContactID: contactUUID, TagID: input.TagID}
	if err := config.DB.Create(&assignment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to assign tag")
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// UnassignTag detaches a tag from a contact
func UnassignTag(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	contactUUID, ok := pathUUID(c, "id", "contact")
	if !ok {
		return
	}
	tagUUID, ok := pathUUID(c, "tagId", "tag")
	if !ok {
		return
	}

	var contact models.Contact
	if err := config.DB.Where("account_id = ? AND id = ?", accountUUID, contactUUID).
		First(&contact).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		return
	}

	result := config.DB.Unscoped().Where("contact_id = ? AND tag_id = ?", contactUUID, tagUUID).
		Delete(&models.ContactTag{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to unassign tag")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Tag assignment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag unassigned"})
}

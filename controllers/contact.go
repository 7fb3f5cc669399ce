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

// CreateContactInput defines the expected JSON structure for creating a contact
type CreateContactInput struct {
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             *string    `json:"email"` // Pointer to allow null
	Phone             *string    `json:"phone"`
	PreferredChannel  string     `json:"preferredChannel"`
	PreferredLanguage string     `json:"preferredLanguage"`
	BrandID           *uuid.UUID `json:"brandId"`
	LocationID        *uuid.UUID `json:"locationId"`
}

// UpdateContactInput defines the expected JSON structure for updating a contact
type UpdateContactInput struct {
	FirstName         *string    `json:"firstName"`
	LastName          *string    `json:"lastName"`
	Email             *string    `json:"email"`
	Phone             *string    `json:"phone"`
	PreferredChannel  *string    `json:"preferredChannel"`
	PreferredLanguage *string    `json:"preferredLanguage"`
	Status            *string    `json:"status"`
	BrandID           *uuid.UUID `json:"brandId"`
	LocationID        *uuid.UUID `json:"locationId"`
}

// CreateContact creates a new contact for the account
func CreateContact(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input CreateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if (input.Email == nil || *input.Email == "") && (input.Phone == nil || *input.Phone == "") {
		utils.RespondWithError(c, http.StatusBadRequest, "Contact needs an email or a phone number")
		return
	}

	if input.Phone != nil && *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	contact := models.Contact{
		ID:                uuid.New(),
		AccountID:         accountUUID,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		Phone:             input.Phone,
		PreferredChannel:  input.PreferredChannel,
		PreferredLanguage: input.PreferredLanguage,
		Status:            "active",
		BrandID:           input.BrandID,
		LocationID:        input.LocationID,
	}

	if err := config.DB.Create(&contact).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create contact")
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// GetContacts retrieves the account's contacts, optionally filtered by
// brand and location query params
func GetContacts(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("account_id = ?", accountUUID)

	if brandID := c.Query("brandId"); brandID != "" {
		brandUUID, err := uuid.Parse(brandID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid brand ID format")
			return
		}
		query = query.Where("brand_id = ?", brandUUID)
	}
	if locationID := c.Query("locationId"); locationID != "" {
		locationUUID, err := uuid.Parse(locationID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid location ID format")
			return
		}
		query = query.Where("location_id = ?", locationUUID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var contacts []models.Contact
	if err := query.Order("created_at").Find(&contacts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// GetContact retrieves a specific contact by ID
func GetContact(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	contactUUID, ok := pathUUID(c, "id", "contact")
	if !ok {
		return
	}

	var contact models.Contact
	if err := config.DB.Preload("TagAssignments").
		Where("account_id = ? AND id = ?", accountUUID, contactUUID).
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, contact)
}

// UpdateContact updates an existing contact
func UpdateContact(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	contactUUID, ok := pathUUID(c, "id", "contact")
	if !ok {
		return
	}

	var input UpdateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var contact models.Contact
	if err := config.DB.Where("account_id = ? AND id = ?", accountUUID, contactUUID).
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.FirstName != nil {
		contact.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		contact.LastName = *input.LastName
	}
	if input.Email != nil {
		contact.Email = input.Email
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		contact.Phone = input.Phone
	}
	if input.PreferredChannel != nil {
		contact.PreferredChannel = *input.PreferredChannel
	}
	if input.PreferredLanguage != nil {
		contact.PreferredLanguage = *input.PreferredLanguage
	}
	if input.Status != nil {
		contact.Status = *input.Status
	}
	if input.BrandID != nil {
		contact.BrandID = input.BrandID
	}
	if input.LocationID != nil {
		contact.LocationID = input.LocationID
	}

	if err := config.DB.Save(&contact).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update contact")
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DeleteContact permanently deletes a contact
func DeleteContact(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	contactUUID, ok := pathUUID(c, "id", "contact")
	if !ok {
		return
	}

	result := config.DB.Unscoped().Where("account_id = ? AND id = ?", accountUUID, contactUUID).
		Delete(&models.Contact{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete contact")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}

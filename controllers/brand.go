package controllers

import (
	"net/http"
	"userpulse-backend/config"
	"userpulse-backend/models"
	"userpulse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateBrandInput struct {
	Name    string `json:"name" binding:"required"`
	Website string `json:"website"`
}

// CreateBrand creates a brand under the account
func CreateBrand(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input CreateBrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	brand := models.Brand{
		AccountID: accountUUID,
		Name:      input.Name,
		Website:   input.Website,
	}
	if err := config.DB.Create(&brand).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create brand")
		return
	}

	c.JSON(http.StatusCreated, brand)
}

// GetBrands lists brands with their locations
func GetBrands(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var brands []models.Brand
	if err := config.DB.Preload("Locations").Where("account_id = ?", accountUUID).
		Find(&brands).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve brands")
		return
	}

	c.JSON(http.StatusOK, brands)
}

type CreateLocationInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// CreateLocation adds a location to a brand
func CreateLocation(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}
	brandUUID, ok := pathUUID(c, "id", "brand")
	if !ok {
		return
	}

	var brand models.Brand
	if err := config.DB.Where("account_id = ? AND id = ?", accountUUID, brandUUID).
		First(&brand).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Brand not found")
		return
	}

	var input CreateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	location := models.Location{
		ID:      uuid.New(),
		BrandID: brand.ID,
		Name:    input.Name,
		Address: input.Address,
	}
	if err := config.DB.Create(&location).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create location")
		return
	}

	c.JSON(http.StatusCreated, location)
}

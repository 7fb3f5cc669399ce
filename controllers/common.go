package controllers

import (
	"net/http"
	"userpulse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// accountFromContext pulls the account claim set by the auth middleware.
// Writes the error response itself; callers just return on !ok.
func accountFromContext(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get("accountId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account ID not found in context")
		return uuid.Nil, false
	}

	accountUUID, err := uuid.Parse(accountID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid account ID format")
		return uuid.Nil, false
	}
	return accountUUID, true
}

// userFromContext pulls the user claim set by the auth middleware.
func userFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userUUID, true
}

// pathUUID parses a :id style path parameter.
func pathUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

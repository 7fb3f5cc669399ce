package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"userpulse-backend/config"
	"userpulse-backend/models"
	"userpulse-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T, accountID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Contact{},
		&models.Tag{},
		&models.ContactTag{},
		&models.SurveyInvitation{},
		&models.SurveyResponse{},
	))
	config.DB = db

	r := gin.New()
	// Stand-in for the auth middleware: inject the claims it would set
	r.Use(func(c *gin.Context) {
		c.Set("userId", uuid.NewString())
		c.Set("accountId", accountID.String())
		c.Set("role", "admin")
	})
	r.GET("/api/contacts/duplicates", GetDuplicateContacts)
	r.POST("/api/contacts/merge", MergeContacts)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetDuplicateContactsEndpoint(t *testing.T) {
	accountID := uuid.New()
	r := setupTestRouter(t, accountID)

	emailA := "Jane@X.com"
	emailB := "jane@x.com "
	phoneB := "555-123-4567"
	require.NoError(t, config.DB.Create(&models.Contact{
		ID: uuid.New(), AccountID: accountID, FirstName: "Jane", Email: &emailA,
	}).Error)
	require.NoError(t, config.DB.Create(&models.Contact{
		ID: uuid.New(), AccountID: accountID, FirstName: "Jane", Email: &emailB, Phone: &phoneB,
	}).Error)
	// A contact in another account never joins the group
	foreign := "jane@x.com"
	require.NoError(t, config.DB.Create(&models.Contact{
		ID: uuid.New(), AccountID: uuid.New(), Email: &foreign,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/contacts/duplicates", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var groups services.DuplicateGroups
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &groups))
	require.Len(t, groups.ByEmail, 1)
	assert.Equal(t, "jane@x.com", groups.ByEmail[0].Key)
	assert.Len(t, groups.ByEmail[0].Contacts, 2)
	assert.Empty(t, groups.ByPhone)
}

func TestMergeRequiresConfirmation(t *testing.T) {
	accountID := uuid.New()
	r := setupTestRouter(t, accountID)

	primary := models.Contact{ID: uuid.New(), AccountID: accountID, FirstName: "P"}
	secondary := models.Contact{ID: uuid.New(), AccountID: accountID, FirstName: "S"}
	require.NoError(t, config.DB.Create(&primary).Error)
	require.NoError(t, config.DB.Create(&secondary).Error)

	w := postJSON(t, r, "/api/contacts/merge", gin.H{
		"primaryId":    primary.ID,
		"secondaryIds": []uuid.UUID{secondary.ID},
		"confirm":      false,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No mutation happened
	var count int64
	config.DB.Model(&models.Contact{}).Where("account_id = ?", accountID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestMergeWithoutPrimaryRejected(t *testing.T) {
	accountID := uuid.New()
	r := setupTestRouter(t, accountID)

	secondary := models.Contact{ID: uuid.New(), AccountID: accountID, FirstName: "S"}
	require.NoError(t, config.DB.Create(&secondary).Error)

	// No primary selected for the group: rejected at binding, before any
	// database work
	w := postJSON(t, r, "/api/contacts/merge", gin.H{
		"secondaryIds": []uuid.UUID{secondary.ID},
		"confirm":      true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	config.DB.Model(&models.Contact{}).Where("account_id = ?", accountID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMergeStaleMemberCountRejected(t *testing.T) {
	accountID := uuid.New()
	r := setupTestRouter(t, accountID)

	primary := models.Contact{ID: uuid.New(), AccountID: accountID, FirstName: "P"}
	secondary := models.Contact{ID: uuid.New(), AccountID: accountID, FirstName: "S"}
	require.NoError(t, config.DB.Create(&primary).Error)
	require.NoError(t, config.DB.Create(&secondary).Error)

	w := postJSON(t, r, "/api/contacts/merge", gin.H{
		"primaryId":    primary.ID,
		"secondaryIds": []uuid.UUID{secondary.ID},
		"confirm":      true,
		"memberCount":  3, // user confirmed a 3-member group that no longer exists
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	config.DB.Model(&models.Contact{}).Where("account_id = ?", accountID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestMergeEndpointHappyPath(t *testing.T) {
	accountID := uuid.New()
	r := setupTestRouter(t, accountID)

	email := "dup@example.com"
	primary := models.Contact{ID: uuid.New(), AccountID: accountID, FirstName: "P", Email: &email}
	phone := "5551234567"
	secondary := models.Contact{ID: uuid.New(), AccountID: accountID, Email: &email, Phone: &phone}
	require.NoError(t, config.DB.Create(&primary).Error)
	require.NoError(t, config.DB.Create(&secondary).Error)

	w := postJSON(t, r, "/api/contacts/merge", gin.H{
		"primaryId":    primary.ID,
		"secondaryIds": []uuid.UUID{secondary.ID},
		"confirm":      true,
		"memberCount":  2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result services.MergeResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, primary.ID, result.PrimaryID)
	assert.Equal(t, 1, result.DeletedCount)

	var merged models.Contact
	require.NoError(t, config.DB.First(&merged, "id = ?", primary.ID).Error)
	require.NotNil(t, merged.Phone)
	assert.Equal(t, "5551234567", *merged.Phone)
}

func TestMergePrimaryNotFoundEndpoint(t *testing.T) {
	accountID := uuid.New()
	r := setupTestRouter(t, accountID)

	secondary := models.Contact{ID: uuid.New(), AccountID: accountID, FirstName: "S"}
	require.NoError(t, config.DB.Create(&secondary).Error)

	w := postJSON(t, r, "/api/contacts/merge", gin.H{
		"primaryId":    uuid.New(),
		"secondaryIds": []uuid.UUID{secondary.ID},
		"confirm":      true,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

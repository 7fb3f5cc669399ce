package services

import (
	"path/filepath"
	"testing"

	"userpulse-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMergeDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	return db
}

func seedContact(t *testing.T, db *gorm.DB, accountID uuid.UUID, c models.Contact) models.Contact {
	t.Helper()
	c.AccountID = accountID
	require.NoError(t, db.Create(&c).Error)
	return c
}

func TestMergeFillInNeverOverwrites(t *testing.T) {
	db := setupMergeDB(t)
	accountID := uuid.New()

	email := "keep@example.com"
	primary := seedContact(t, db, accountID, models.Contact{
		FirstName: "Keep",
		Email:     &email,
	})
	otherEmail := "other@example.com"
	otherPhone := "5551234567"
	secondary := seedContact(t, db, accountID, models.Contact{
		FirstName: "Other",
		LastName:  "Person",
		Email:     &otherEmail,
		Phone:     &otherPhone,
	})

	result, err := NewMergeService(db).Merge(accountID, primary.ID, []uuid.UUID{secondary.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeletedCount)
	assert.Equal(t, primary.ID, result.PrimaryID)

	var merged models.Contact
	require.NoError(t, db.First(&merged, "id = ?", primary.ID).Error)
	assert.Equal(t, "Keep", merged.FirstName)
	assert.Equal(t, "keep@example.com", *merged.Email) // populated field untouched
	assert.Equal(t, "Person", merged.LastName)         // empty field filled
	require.NotNil(t, merged.Phone)
	assert.Equal(t, "5551234567", *merged.Phone)
}

func TestMergeFillInTakesFirstNonEmptyInOrder(t *testing.T) {
	db := setupMergeDB(t)
	accountID := uuid.New()

	primary := seedContact(t, db, accountID, models.Contact{FirstName: "P"})
	s1 := seedContact(t, db, accountID, models.Contact{}) // nothing to offer
	lang2 := seedContact(t, db, accountID, models.Contact{PreferredLanguage: "fr", PreferredChannel: "sms"})
	lang3 := seedContact(t, db, accountID, models.Contact{PreferredLanguage: "de"})

	_, err := NewMergeService(db).Merge(accountID, primary.ID,
		[]uuid.UUID{s1.ID, lang2.ID, lang3.ID})
	require.NoError(t, err)

	var merged models.Contact
	require.NoError(t, db.First(&merged, "id = ?", primary.ID).Error)
	assert.Equal(t, "fr", merged.PreferredLanguage) // first secondary with a value wins
	assert.Equal(t, "sms", merged.PreferredChannel)
}

func TestMergeReassignsDependentRecords(t *testing.T) {
	db := setupMergeDB(t)
	accountID := uuid.New()
	eventID := uuid.New()

	primary := seedContact(t, db, accountID, models.Contact{FirstName: "P"})
	secondary := seedContact(t, db, accountID, models.Contact{FirstName: "S"})

	inv := models.SurveyInvitation{
		AccountID: accountID, SurveyEventID: eventID, ContactID: secondary.ID,
		Channel: "email", Status: "sent",
	}
	require.NoError(t, db.Create(&inv).Error)
	resp := models.SurveyResponse{
		AccountID: accountID, SurveyEventID: eventID, ContactID: secondary.ID,
		Score: 9,
	}
	require.NoError(t, db.Create(&resp).Error)
	primaryResp := models.SurveyResponse{
		AccountID: accountID, SurveyEventID: eventID, ContactID: primary.ID,
		Score: 7,
	}
	require.NoError(t, db.Create(&primaryResp).Error)

	_, err := NewMergeService(db).Merge(accountID, primary.ID, []uuid.UUID{secondary.ID})
	require.NoError(t, err)

	// Nothing references the secondary anymore
	var count int64
	db.Model(&models.SurveyInvitation{}).Where("contact_id = ?", secondary.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.SurveyResponse{}).Where("contact_id = ?", secondary.ID).Count(&count)
	assert.Zero(t, count)

	// Everything now references the primary
	db.Model(&models.SurveyInvitation{}).Where("contact_id = ?", primary.ID).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Model(&models.SurveyResponse{}).Where("contact_id = ?", primary.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestMergeTransfersTagsWithoutDuplicates(t *testing.T) {
	db := setupMergeDB(t)
	accountID := uuid.New()

	primary := seedContact(t, db, accountID, models.Contact{FirstName: "P"})
	s1 := seedContact(t, db, accountID, models.Contact{FirstName: "S1"})
	s2 := seedContact(t, db, accountID, models.Contact{FirstName: "S2"})

	shared := models.Tag{ID: uuid.New(), AccountID: accountID, Name: "vip"}
	onPrimary := models.Tag{ID: uuid.New(), AccountID: accountID, Name: "newsletter"}
	fresh := models.Tag{ID: uuid.New(), AccountID: accountID, Name: "detractor"}
	require.NoError(t, db.Create(&shared).Error)
	require.NoError(t, db.Create(&onPrimary).Error)
	require.NoError(t, db.Create(&fresh).Error)

	// primary already holds "newsletter"; both secondaries hold "vip";
	// s2 additionally holds "newsletter" and "detractor"
	require.NoError(t, db.Create(&models.ContactTag{ContactID: primary.ID, TagID: onPrimary.ID}).Error)
	require.NoError(t, db.Create(&models.ContactTag{ContactID: s1.ID, TagID: shared.ID}).Error)
	require.NoError(t, db.Create(&models.ContactTag{ContactID: s2.ID, TagID: shared.ID}).Error)
	require.NoError(t, db.Create(&models.ContactTag{ContactID: s2.ID, TagID: onPrimary.ID}).Error)
	require.NoError(t, db.Create(&models.ContactTag{ContactID: s2.ID, TagID: fresh.ID}).Error)

	_, err := NewMergeService(db).Merge(accountID, primary.ID, []uuid.UUID{s1.ID, s2.ID})
	require.NoError(t, err)

	var assignments []models.ContactTag
	require.NoError(t, db.Where("contact_id = ?", primary.ID).Find(&assignments).Error)
	tagIDs := map[uuid.UUID]int{}
	for _, a := range assignments {
		tagIDs[a.TagID]++
	}
	assert.Len(t, tagIDs, 3)
	assert.Equal(t, 1, tagIDs[shared.ID], "tag held by both secondaries inserted once")
	assert.Equal(t, 1, tagIDs[onPrimary.ID], "tag already on primary not re-inserted")
	assert.Equal(t, 1, tagIDs[fresh.ID])

	// No assignments left on the deleted secondaries
	var count int64
	db.Model(&models.ContactTag{}).Where("contact_id IN ?", []uuid.UUID{s1.ID, s2.ID}).Count(&count)
	assert.Zero(t, count)
}

func TestMergeDeletesSecondariesPermanently(t *testing.T) {
	db := setupMergeDB(t)
	accountID := uuid.New()

	primary := seedContact(t, db, accountID, models.Contact{FirstName: "P"})
	s1 := seedContact(t, db, accountID, models.Contact{FirstName: "S1"})
	s2 := seedContact(t, db, accountID, models.Contact{FirstName: "S2"})

	result, err := NewMergeService(db).Merge(accountID, primary.ID, []uuid.UUID{s1.ID, s2.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, result.DeletedCount)

	// Hard-deleted, not soft-deleted
	var count int64
	db.Unscoped().Model(&models.Contact{}).
		Where("id IN ?", []uuid.UUID{s1.ID, s2.ID}).Count(&count)
	assert.Zero(t, count)

	db.Model(&models.Contact{}).Where("id = ?", primary.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMergePrimaryNotFound(t *testing.T) {
	db := setupMergeDB(t)
	accountID := uuid.New()
	secondary := seedContact(t, db, accountID, models.Contact{FirstName: "S"})

	_, err := NewMergeService(db).Merge(accountID, uuid.New(), []uuid.UUID{secondary.ID})
	assert.ErrorIs(t, err, ErrPrimaryNotFound)

	// Secondary untouched
	var count int64
	db.Model(&models.Contact{}).Where("id = ?", secondary.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMergePrimaryScopedToAccount(t *testing.T) {
	db := setupMergeDB(t)
	accountID := uuid.New()
	otherAccount := uuid.New()

	foreign := seedContact(t, db, otherAccount, models.Contact{FirstName: "F"})
	secondary := seedContact(t, db, accountID, models.Contact{FirstName: "S"})

	// A primary belonging to another account is not visible
	_, err := NewMergeService(db).Merge(accountID, foreign.ID, []uuid.UUID{secondary.ID})
	assert.ErrorIs(t, err, ErrPrimaryNotFound)
}

func TestMergeInputValidation(t *testing.T) {
	db := setupMergeDB(t)
	accountID := uuid.New()
	primary := seedContact(t, db, accountID, models.Contact{FirstName: "P"})

	_, err := NewMergeService(db).Merge(accountID, primary.ID, nil)
	assert.ErrorIs(t, err, ErrNoSecondaries)

	_, err = NewMergeService(db).Merge(accountID, primary.ID, []uuid.UUID{primary.ID})
	assert.ErrorIs(t, err, ErrPrimaryInSecondaries)
}

func TestMergeMissingSecondaryRollsBack(t *testing.T) {
	db := setupMergeDB(t)
	accountID := uuid.New()

	primary := seedContact(t, db, accountID, models.Contact{FirstName: "P"})
	real := seedContact(t, db, accountID, models.Contact{FirstName: "R", LastName: "Name"})

	_, err := NewMergeService(db).Merge(accountID, primary.ID, []uuid.UUID{real.ID, uuid.New()})
	require.Error(t, err)

	// Transaction rolled back: the real secondary survives and the
	// primary is unchanged
	var count int64
	db.Model(&models.Contact{}).Where("id = ?", real.ID).Count(&count)
	assert.Equal(t, int64(1), count)
	var unchanged models.Contact
	require.NoError(t, db.First(&unchanged, "id = ?", primary.ID).Error)
	assert.Empty(t, unchanged.LastName)
}

// The Jane scenario: duplicate-by-email contacts merge with the primary
// picking up the secondary's phone
func TestMergeJaneScenario(t *testing.T) {
	db := setupMergeDB(t)
	accountID := uuid.New()

	emailA := "Jane@X.com"
	a := seedContact(t, db, accountID, models.Contact{FirstName: "Jane", Email: &emailA})
	emailB := "jane@x.com "
	phoneB := "555-123-4567"
	b := seedContact(t, db, accountID, models.Contact{FirstName: "Jane", Email: &emailB, Phone: &phoneB})

	groups := FindDuplicates([]models.Contact{a, b})
	require.Len(t, groups.ByEmail, 1)
	require.Equal(t, "jane@x.com", groups.ByEmail[0].Key)

	_, err := NewMergeService(db).Merge(accountID, a.ID, []uuid.UUID{b.ID})
	require.NoError(t, err)

	var merged models.Contact
	require.NoError(t, db.First(&merged, "id = ?", a.ID).Error)
	require.NotNil(t, merged.Phone)
	assert.Equal(t, "555-123-4567", *merged.Phone)
	assert.Equal(t, "Jane@X.com", *merged.Email) // original value kept verbatim

	var count int64
	db.Unscoped().Model(&models.Contact{}).Where("id = ?", b.ID).Count(&count)
	assert.Zero(t, count)
}

func TestComputeFillInsBrandAndLocation(t *testing.T) {
	brand := uuid.New()
	location := uuid.New()
	primary := models.Contact{FirstName: "P"}
	secondaries := []models.Contact{
		{FirstName: "S1"},
		{FirstName: "S2", BrandID: &brand, LocationID: &location},
	}

	updates := ComputeFillIns(primary, secondaries)
	assert.Equal(t, brand, updates["brand_id"])
	assert.Equal(t, location, updates["location_id"])
	assert.NotContains(t, updates, "first_name")
}

func TestComputeFillInsEmptyWhenPrimaryComplete(t *testing.T) {
	email := "full@example.com"
	phone := "5551234567"
	brand := uuid.New()
	location := uuid.New()
	primary := models.Contact{
		FirstName: "Full", LastName: "Contact",
		Email: &email, Phone: &phone,
		PreferredChannel: "email", PreferredLanguage: "en",
		BrandID: &brand, LocationID: &location,
	}
	other := "x@example.com"
	secondaries := []models.Contact{{FirstName: "X", Email: &other}}

	assert.Empty(t, ComputeFillIns(primary, secondaries))
}

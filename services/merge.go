// services/merge.go
package services

import (
	"errors"
	"fmt"

	"userpulse-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPrimaryNotFound      = errors.New("primary contact not found")
	ErrNoSecondaries        = errors.New("no secondary contacts given")
	ErrPrimaryInSecondaries = errors.New("primary contact listed as secondary")
)

// MergeResult reports the surviving contact and how many were removed.
type MergeResult struct {
	PrimaryID    uuid.UUID `json:"primaryId"`
	DeletedCount int       `json:"deletedCount"`
}

// MergeService consolidates duplicate contacts into a chosen primary.
type MergeService struct {
	db *gorm.DB
}

func NewMergeService(db *gorm.DB) *MergeService {
	return &MergeService{db: db}
}

// Merge folds the secondary contacts into the primary: fills empty primary
// fields from the secondaries in order, moves tag assignments, reassigns
// survey invitations and responses, then permanently deletes the
// secondaries. All four phases run in one transaction so a failure in any
// phase leaves the store untouched.
func (s *MergeService) Merge(accountID, primaryID uuid.UUID, secondaryIDs []uuid.UUID) (*MergeResult, error) {
	if len(secondaryIDs) == 0 {
		return nil, ErrNoSecondaries
	}
	for _, id := range secondaryIDs {
		if id == primaryID {
			return nil, ErrPrimaryInSecondaries
		}
	}

	var result *MergeResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var primary models.Contact
		if err := tx.Where("account_id = ? AND id = ?", accountID, primaryID).
			First(&primary).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPrimaryNotFound
			}
			return err
		}

		secondaries, err := loadInOrder(tx, accountID, secondaryIDs)
		if err != nil {
			return err
		}

		// Phase 1: fill empty primary fields from the secondaries
		updates := ComputeFillIns(primary, secondaries)
		if len(updates) > 0 {
			if err := tx.Model(&models.Contact{}).Where("id = ?", primary.ID).
				Updates(updates).Error; err != nil {
				return fmt.Errorf("fill-in update failed: %w", err)
			}
		}

		// Phase 2: move tag assignments not already on the primary
		if err := transferTags(tx, primary.ID, secondaryIDs); err != nil {
			return err
		}

		// Phase 3: reassign dependent survey records
		if err := tx.Model(&models.SurveyInvitation{}).
			Where("contact_id IN ?", secondaryIDs).
			Update("contact_id", primary.ID).Error; err != nil {
			return fmt.Errorf("invitation reassignment failed: %w", err)
		}
		if err := tx.Model(&models.SurveyResponse{}).
			Where("contact_id IN ?", secondaryIDs).
			Update("contact_id", primary.ID).Error; err != nil {
			return fmt.Errorf("response reassignment failed: %w", err)
		}

		// Phase 4: remove secondary tag rows, then the secondaries
		if err := tx.Unscoped().Where("contact_id IN ?", secondaryIDs).
			Delete(&models.ContactTag{}).Error; err != nil {
			return fmt.Errorf("secondary tag cleanup failed: %w", err)
		}
		if err := tx.Unscoped().Where("account_id = ? AND id IN ?", accountID, secondaryIDs).
			Delete(&models.Contact{}).Error; err != nil {
			return fmt.Errorf("secondary delete failed: %w", err)
		}

		result = &MergeResult{PrimaryID: primary.ID, DeletedCount: len(secondaries)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// loadInOrder fetches the secondaries and returns them in the order the
// caller listed them, since fill-in precedence follows that order.
func loadInOrder(tx *gorm.DB, accountID uuid.UUID, ids []uuid.UUID) ([]models.Contact, error) {
	var rows []models.Contact
	if err := tx.Where("account_id = ? AND id IN ?", accountID, ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Contact, len(rows))
	for _, c := range rows {
		byID[c.ID] = c
	}
	ordered := make([]models.Contact, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("secondary contact %s not found", id)
		}
		ordered = append(ordered, c)
	}
	return ordered, nil
}

// ComputeFillIns returns the column updates for the primary: for every
// mergeable field that is empty on the primary, the first non-empty value
// among the secondaries in their given order. Populated primary fields are
// never touched.
func ComputeFillIns(primary models.Contact, secondaries []models.Contact) map[string]interface{} {
	updates := map[string]interface{}{}

	if primary.FirstName == "" {
		if v := firstString(secondaries, func(c models.Contact) string { return c.FirstName }); v != "" {
			updates["first_name"] = v
		}
	}
	if primary.LastName == "" {
		if v := firstString(secondaries, func(c models.Contact) string { return c.LastName }); v != "" {
			updates["last_name"] = v
		}
	}
	if primary.Email == nil || *primary.Email == "" {
		if v := firstStringPtr(secondaries, func(c models.Contact) *string { return c.Email }); v != nil {
			updates["email"] = *v
		}
	}
	if primary.Phone == nil || *primary.Phone == "" {
		if v := firstStringPtr(secondaries, func(c models.Contact) *string { return c.Phone }); v != nil {
			updates["phone"] = *v
		}
	}
	if primary.PreferredChannel == "" {
		if v := firstString(secondaries, func(c models.Contact) string { return c.PreferredChannel }); v != "" {
			updates["preferred_channel"] = v
		}
	}
	if primary.PreferredLanguage == "" {
		if v := firstString(secondaries, func(c models.Contact) string { return c.PreferredLanguage }); v != "" {
			updates["preferred_language"] = v
		}
	}
	if primary.BrandID == nil {
		if v := firstUUIDPtr(secondaries, func(c models.Contact) *uuid.UUID { return c.BrandID }); v != nil {
			updates["brand_id"] = *v
		}
	}
	if primary.LocationID == nil {
		if v := firstUUIDPtr(secondaries, func(c models.Contact) *uuid.UUID { return c.LocationID }); v != nil {
			updates["location_id"] = *v
		}
	}

	return updates
}

func firstString(secondaries []models.Contact, get func(models.Contact) string) string {
	for _, c := range secondaries {
		if v := get(c); v != "" {
			return v
		}
	}
	return ""
}

func firstStringPtr(secondaries []models.Contact, get func(models.Contact) *string) *string {
	for _, c := range secondaries {
		if v := get(c); v != nil && *v != "" {
			return v
		}
	}
	return nil
}

func firstUUIDPtr(secondaries []models.Contact, get func(models.Contact) *uuid.UUID) *uuid.UUID {
	for _, c := range secondaries {
		if v := get(c); v != nil {
			return v
		}
	}
	return nil
}

// transferTags copies tag assignments from the secondaries onto the
// primary. The primary's tag set is tracked incrementally, so a tag held
// by two secondaries is inserted once.
func transferTags(tx *gorm.DB, primaryID uuid.UUID, secondaryIDs []uuid.UUID) error {
	var primaryTags []models.ContactTag
	if err := tx.Where("contact_id = ?", primaryID).Find(&primaryTags).Error; err != nil {
		return fmt.Errorf("loading primary tags failed: %w", err)
	}
	have := make(map[uuid.UUID]bool, len(primaryTags))
	for _, ct := range primaryTags {
		have[ct.TagID] = true
	}

	for _, secondaryID := range secondaryIDs {
		var tags []models.ContactTag
		if err := tx.Where("contact_id = ?", secondaryID).
			Order("created_at").Find(&tags).Error; err != nil {
			return fmt.Errorf("loading secondary tags failed: %w", err)
		}
		for _, ct := range tags {
			if have[ct.TagID] {
				continue
			}
			assignment := models.ContactTag{ContactID: primaryID, TagID: ct.TagID}
			if err := tx.Create(&assignment).Error; err != nil {
				return fmt.Errorf("tag transfer failed: %w", err)
			}
			have[ct.TagID] = true
		}
	}
	return nil
}

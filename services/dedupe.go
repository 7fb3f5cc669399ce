// services/dedupe.go
package services

import (
	"userpulse-backend/models"
	"userpulse-backend/utils"
)

// DuplicateGroup is a derived set of >=2 contacts sharing one normalized
// key. Never persisted; recomputed from the live contact list on demand.
type DuplicateGroup struct {
	Key      string           `json:"key"`
	Contacts []models.Contact `json:"contacts"`
}

// DuplicateGroups holds the two independent grouping dimensions. A contact
// with both a duplicate email and a duplicate phone appears in both.
type DuplicateGroups struct {
	ByEmail []DuplicateGroup `json:"byEmail"`
	ByPhone []DuplicateGroup `json:"byPhone"`
}

// FindDuplicates partitions contacts into duplicate candidate groups by
// normalized email and by normalized phone. Pure function of its input:
// no side effects, deterministic output order (keys in first-seen order,
// members in input order).
func FindDuplicates(contacts []models.Contact) DuplicateGroups {
	return DuplicateGroups{
		ByEmail: groupBy(contacts, func(c models.Contact) string {
			return utils.NormalizeEmail(c.Email)
		}),
		ByPhone: groupBy(contacts, func(c models.Contact) string {
			return utils.NormalizePhone(c.Phone)
		}),
	}
}

func groupBy(contacts []models.Contact, keyFn func(models.Contact) string) []DuplicateGroup {
	members := make(map[string][]models.Contact)
	var order []string

	for _, c := range contacts {
		key := keyFn(c)
		if key == "" {
			continue
		}
		if _, seen := members[key]; !seen {
			order = append(order, key)
		}
		members[key] = append(members[key], c)
	}

	groups := []DuplicateGroup{}
	for _, key := range order {
		if len(members[key]) < 2 {
			continue
		}
		groups = append(groups, DuplicateGroup{Key: key, Contacts: members[key]})
	}
	return groups
}

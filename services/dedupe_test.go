package services

import (
	"fmt"
	"testing"

	"userpulse-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func contact(first string, email, phone *string) models.Contact {
	return models.Contact{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		FirstName: first,
		Email:     email,
		Phone:     phone,
	}
}

func TestFindDuplicatesEmptyInput(t *testing.T) {
	groups := FindDuplicates(nil)
	assert.Empty(t, groups.ByEmail)
	assert.Empty(t, groups.ByPhone)

	groups = FindDuplicates([]models.Contact{})
	assert.Empty(t, groups.ByEmail)
	assert.Empty(t, groups.ByPhone)
}

func TestFindDuplicatesAllUnique(t *testing.T) {
	contacts := []models.Contact{
		contact("Ann", strPtr("ann@example.com"), strPtr("5551230001")),
		contact("Bob", strPtr("bob@example.com"), strPtr("5551230002")),
		contact("Cal", strPtr("cal@example.com"), nil),
	}

	groups := FindDuplicates(contacts)
	assert.Empty(t, groups.ByEmail)
	assert.Empty(t, groups.ByPhone)
}

// Normalization folds case and whitespace: "Jane@X.com" and "jane@x.com "
// land in one group keyed "jane@x.com"
func TestFindDuplicatesEmailNormalization(t *testing.T) {
	a := contact("Jane", strPtr("Jane@X.com"), nil)
	b := contact("Jane", strPtr("jane@x.com "), strPtr("555-123-4567"))

	groups := FindDuplicates([]models.Contact{a, b})

	require.Len(t, groups.ByEmail, 1)
	assert.Equal(t, "jane@x.com", groups.ByEmail[0].Key)
	require.Len(t, groups.ByEmail[0].Contacts, 2)
	assert.Equal(t, a.ID, groups.ByEmail[0].Contacts[0].ID)
	assert.Equal(t, b.ID, groups.ByEmail[0].Contacts[1].ID)
	assert.Empty(t, groups.ByPhone)
}

// Phone formatting differences collapse onto the digit string
func TestFindDuplicatesPhoneNormalization(t *testing.T) {
	c1 := contact("C", nil, strPtr("(555) 123-4567"))
	d := contact("D", nil, strPtr("5551234567"))

	groups := FindDuplicates([]models.Contact{c1, d})

	require.Len(t, groups.ByPhone, 1)
	assert.Equal(t, "5551234567", groups.ByPhone[0].Key)
	assert.Len(t, groups.ByPhone[0].Contacts, 2)
	assert.Empty(t, groups.ByEmail)
}

// Numbers with fewer than 10 digits never form a group, even when they
// textually match each other
func TestFindDuplicatesShortPhonesExcluded(t *testing.T) {
	contacts := []models.Contact{
		contact("E", nil, strPtr("123")),
		contact("F", nil, strPtr("123")),
		contact("G", nil, strPtr("1-2-3")),
	}

	groups := FindDuplicates(contacts)
	assert.Empty(t, groups.ByPhone)
}

// Empty and nil emails never form a group either
func TestFindDuplicatesEmptyKeysExcluded(t *testing.T) {
	contacts := []models.Contact{
		contact("A", strPtr(""), nil),
		contact("B", strPtr("   "), nil),
		contact("C", nil, nil),
	}

	groups := FindDuplicates(contacts)
	assert.Empty(t, groups.ByEmail)
}

// A contact duplicated on both dimensions shows up in an email group AND
// a phone group
func TestFindDuplicatesBothDimensions(t *testing.T) {
	a := contact("A", strPtr("dup@example.com"), strPtr("5551234567"))
	b := contact("B", strPtr("dup@example.com"), strPtr("555-123-4567"))

	groups := FindDuplicates([]models.Contact{a, b})

	require.Len(t, groups.ByEmail, 1)
	require.Len(t, groups.ByPhone, 1)
	assert.Len(t, groups.ByEmail[0].Contacts, 2)
	assert.Len(t, groups.ByPhone[0].Contacts, 2)
}

// Every emitted group has >=2 members sharing its key, and keys are
// unique within a dimension
func TestFindDuplicatesGroupInvariants(t *testing.T) {
	var contacts []models.Contact
	for i := 0; i < 6; i++ {
		contacts = append(contacts, contact(
			fmt.Sprintf("P%d", i),
			strPtr(fmt.Sprintf("shared%d@example.com", i%2)),
			strPtr(fmt.Sprintf("55512345%02d", i%3)),
		))
	}
	contacts = append(contacts, contact("Solo", strPtr("solo@example.com"), strPtr("9995550000")))

	groups := FindDuplicates(contacts)

	seenEmailKeys := map[string]bool{}
	for _, g := range groups.ByEmail {
		assert.GreaterOrEqual(t, len(g.Contacts), 2)
		assert.False(t, seenEmailKeys[g.Key], "duplicate email group key %q", g.Key)
		seenEmailKeys[g.Key] = true
		for _, member := range g.Contacts {
			assert.Equal(t, g.Key, *member.Email)
		}
	}

	seenPhoneKeys := map[string]bool{}
	for _, g := range groups.ByPhone {
		assert.GreaterOrEqual(t, len(g.Contacts), 2)
		assert.GreaterOrEqual(t, len(g.Key), 10)
		assert.False(t, seenPhoneKeys[g.Key], "duplicate phone group key %q", g.Key)
		seenPhoneKeys[g.Key] = true
	}
}

// Grouping is a pure projection: same input, same output
func TestFindDuplicatesIdempotent(t *testing.T) {
	contacts := []models.Contact{
		contact("A", strPtr("dup@example.com"), strPtr("(555) 123-4567")),
		contact("B", strPtr("DUP@example.com"), nil),
		contact("C", nil, strPtr("5551234567")),
		contact("D", strPtr("other@example.com"), strPtr("123")),
	}

	first := FindDuplicates(contacts)
	second := FindDuplicates(contacts)
	assert.Equal(t, first, second)
}

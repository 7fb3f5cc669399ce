package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionMatrix(t *testing.T) {
	tests := []struct {
		role     string
		section  string
		expected int
	}{
		{"owner", SectionTeam, LevelManage},
		{"owner", SectionSettings, LevelManage},
		{"admin", SectionContacts, LevelManage},
		{"admin", SectionTeam, LevelEdit},
		{"admin", SectionSettings, LevelView},
		{"editor", SectionContacts, LevelEdit},
		{"editor", SectionTeam, LevelNone},
		{"viewer", SectionSurveys, LevelView},
		{"viewer", SectionSettings, LevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.section, func(t *testing.T) {
			assert.Equal(t, tt.expected, PermissionLevel(tt.role, tt.section))
		})
	}
}

func TestPermissionLevelUnknowns(t *testing.T) {
	assert.Equal(t, LevelNone, PermissionLevel("intern", SectionContacts))
	assert.Equal(t, LevelNone, PermissionLevel("owner", "payroll"))
	assert.Equal(t, LevelNone, PermissionLevel("", ""))
}

func TestHasPermissionOrdering(t *testing.T) {
	// A manage-level role satisfies every lower requirement
	assert.True(t, HasPermission("owner", SectionContacts, LevelView))
	assert.True(t, HasPermission("owner", SectionContacts, LevelEdit))
	assert.True(t, HasPermission("owner", SectionContacts, LevelManage))

	// A view-level role stops at view
	assert.True(t, HasPermission("viewer", SectionContacts, LevelView))
	assert.False(t, HasPermission("viewer", SectionContacts, LevelEdit))

	// No level satisfies a section the role cannot see
	assert.False(t, HasPermission("editor", SectionTeam, LevelView))
}

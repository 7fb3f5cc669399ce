// utils/permissions.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// Permission levels, ordered. A role satisfies a requirement when its level
// for the section is >= the required level.
const (
	LevelNone   = 0
	LevelView   = 1
	LevelEdit   = 2
	LevelManage = 3
)

// Sections of the admin dashboard
const (
	SectionContacts     = "contacts"
	SectionSurveys      = "surveys"
	SectionDistribution = "distribution"
	SectionFeedback     = "feedback"
	SectionTeam         = "team"
	SectionSettings     = "settings"
)

// rolePermissions is the static role x section matrix.
var rolePermissions = map[string]map[string]int{
	"owner": {
		SectionContacts:     LevelManage,
		SectionSurveys:      LevelManage,
		SectionDistribution: LevelManage,
		SectionFeedback:     LevelManage,
		SectionTeam:         LevelManage,
		SectionSettings:     LevelManage,
	},
	"admin": {
		SectionContacts:     LevelManage,
		SectionSurveys:      LevelManage,
		SectionDistribution: LevelManage,
		SectionFeedback:     LevelManage,
		SectionTeam:         LevelEdit,
		SectionSettings:     LevelView,
	},
	"editor": {
		SectionContacts:     LevelEdit,
		SectionSurveys:      LevelEdit,
		SectionDistribution: LevelEdit,
		SectionFeedback:     LevelEdit,
		SectionTeam:         LevelNone,
		SectionSettings:     LevelNone,
	},
	"viewer": {
		SectionContacts:     LevelView,
		SectionSurveys:      LevelView,
		SectionDistribution: LevelView,
		SectionFeedback:     LevelView,
		SectionTeam:         LevelNone,
		SectionSettings:     LevelNone,
	},
}

// PermissionLevel returns the level a role holds for a section. Unknown
// roles and sections resolve to LevelNone.
func PermissionLevel(role, section string) int {
	sections, ok := rolePermissions[role]
	if !ok {
		return LevelNone
	}
	return sections[section]
}

// HasPermission reports whether role meets the required level for section.
func HasPermission(role, section string, level int) bool {
	return PermissionLevel(role, section) >= level
}

// RequirePermission gates a route group on the role claim set by
// AuthMiddleware. Must run after it.
func RequirePermission(section string, level int) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(401, gin.H{"error": "Role not found in context"})
			return
		}
		roleStr, ok := role.(string)
		if !ok || !HasPermission(roleStr, section, level) {
			c.AbortWithStatusJSON(403, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

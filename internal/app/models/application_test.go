package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationTypeGrantedRole(t *testing.T) {
	role, ok := ApplicationGuide.GrantedRole()
	assert.True(t, ok)
	assert.Equal(t, RoleGuide, role)

	// Mentor and influencer acceptance records the decision without
	// touching the account role.
	_, ok = ApplicationMentor.GrantedRole()
	assert.False(t, ok)
	_, ok = ApplicationInfluencer.GrantedRole()
	assert.False(t, ok)
}

func TestApplicationTypeIsValid(t *testing.T) {
	assert.True(t, ApplicationGuide.IsValid())
	assert.True(t, ApplicationMentor.IsValid())
	assert.True(t, ApplicationInfluencer.IsValid())
	assert.False(t, ApplicationType("astronaut").IsValid())
}

func TestNightCampChildTables(t *testing.T) {
	assert.Len(t, NightCampChildTables, 3)
	for name, table := range NightCampChildTables {
		assert.NotEmpty(t, name)
		assert.Contains(t, table, "night_camp_")
	}
}

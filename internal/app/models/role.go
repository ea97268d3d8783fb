package models

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleLearner    Role = "learner"
	RoleGuide      Role = "guide"
	RoleEnthusiast Role = "enthusiast"
	RoleMentor     Role = "mentor"
	RoleInfluencer Role = "influencer"
)

// AllRoles lists every valid role. Adding a role requires touching this
// list and the IsValid switch, which keeps the enum closed.
var AllRoles = []Role{
	RoleAdmin,
	RoleModerator,
	RoleLearner,
	RoleGuide,
	RoleEnthusiast,
	RoleMentor,
	RoleInfluencer,
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleLearner, RoleGuide,
		RoleEnthusiast, RoleMentor, RoleInfluencer:
		return true
	}
	return false
}

// IsElevated reports whether r may act on resources it does not own.
func (r Role) IsElevated() bool {
	switch r {
	case RoleAdmin, RoleModerator:
		return true
	case RoleLearner, RoleGuide, RoleEnthusiast, RoleMentor, RoleInfluencer:
		return false
	}
	return false
}

// ParseRole converts a string into a Role, reporting whether it is valid.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}

package user

import "time"

type Role string

// Roles, lowest to highest.
const (
	RoleStudent        Role = "student"
	RoleMember         Role = "member"
	RoleCoreMember     Role = "core_member"
	RoleDeputyConvener Role = "deputy_convener"
	RoleConvener       Role = "convener"
)

var (
	AllRoles = []Role{RoleStudent, RoleMember, RoleCoreMember, RoleDeputyConvener, RoleConvener}

	// AdminRoles may manage users, settings and the team directory.
	AdminRoles = []Role{RoleDeputyConvener, RoleConvener}

	// rolePriorities drives display ordering on the public team page.
	// Must stay in sync with the role enum.
	rolePriorities = map[Role]int{
		RoleConvener:       50,
		RoleDeputyConvener: 40,
		RoleCoreMember:     30,
		RoleMember:         20,
		RoleStudent:        10,
	}
)

func RolePriority(role Role) int {
	return rolePriorities[role]
}

func (r Role) IsValid() bool {
	_, ok := rolePriorities[r]
	return ok
}

func (r Role) IsAdmin() bool {
	return r == RoleConvener || r == RoleDeputyConvener
}

type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Image         string     `json:"image,omitempty"`
	Role          Role       `json:"role"`
	CollegeID     string     `json:"college_id,omitempty"`
	XPPoints      int        `json:"xp_points"`
	Bio           string     `json:"bio,omitempty"`
	GithubID      string     `json:"github_id,omitempty"`
	LinkedinID    string     `json:"linkedin_id,omitempty"`
	EmailVerified *time.Time `json:"email_verified,omitempty"`
	CreatedAt     time.Time  `json:"created_at"` // UTC
}

func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent || u.Role == ""
}

// GetFilter selects a single user; exactly one field should be set.
type GetFilter struct {
	ID    string
	Email string
}

// TeamPage is the public team directory projection: core team ordered by
// role seniority, members ordered by name. Students never appear.
type TeamPage struct {
	CoreTeam []User `json:"core_team"`
	Members  []User `json:"members"`
	PhotoURL string `json:"photo_url,omitempty"`
}

package club

import "github.com/MSTC-DAU/mstc/core"

// NewMentor contains information needed to add a mentor to the directory.
type NewMentor struct {
	Name       string `json:"name" validate:"required"`
	Role       string `json:"role" validate:"required"`
	Image      string `json:"image"`
	LinkedinID string `json:"linkedin_id"`
	GithubID   string `json:"github_id"`
}

func (nm *NewMentor) Validate() error {
	nm.Name = core.CleanString(nm.Name)
	nm.Role = core.CleanString(nm.Role)
	return core.Validate.Struct(nm)
}

// NewLegacyNote contains information needed to record an alumni note.
type NewLegacyNote struct {
	UserID  string `json:"user_id" validate:"required"`
	Content string `json:"content" validate:"required"`
	Role    string `json:"role"`
	Tenure  string `json:"tenure"`
}

func (nn *NewLegacyNote) Validate() error {
	nn.Content = core.CleanString(nn.Content)
	nn.Role = core.CleanString(nn.Role)
	nn.Tenure = core.CleanString(nn.Tenure)
	return core.Validate.Struct(nn)
}

package club

import "time"

// Mentor is a directory entry on the public team page, independent of
// platform users.
type Mentor struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Image      string    `json:"image,omitempty"`
	LinkedinID string    `json:"linkedin_id,omitempty"`
	GithubID   string    `json:"github_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"` // UTC
}

// TeamPhoto is an uploaded club photo; at most one carries the header flag
// at any time.
type TeamPhoto struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	IsHeader    bool      `json:"is_header"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// LegacyNote is an alumni note displayed on the public team page.
type LegacyNote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Tenure    string    `json:"tenure"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

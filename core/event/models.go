package event

import (
	"encoding/json"
	"time"
)

type (
	Type   string
	Status string
)

const (
	TypeHackathon  Type = "hackathon"
	TypeCPSolo     Type = "cp_solo"
	TypeCPTeam     Type = "cp_team"
	TypeMentorship Type = "mentorship"
	TypeTeamEvent  Type = "team_event"
	TypeSoloEvent  Type = "solo_event"
)

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusPast     Status = "past"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeHackathon, TypeCPSolo, TypeCPTeam, TypeMentorship, TypeTeamEvent, TypeSoloEvent:
		return true
	}
	return false
}

func (s Status) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusPast:
		return true
	}
	return false
}

type Event struct {
	ID                    string          `json:"id"`
	Slug                  string          `json:"slug"`
	Title                 string          `json:"title"`
	Type                  Type            `json:"type"`
	Status                Status          `json:"status"`
	PosterURL             string          `json:"poster_url,omitempty"`
	Description           string          `json:"description,omitempty"`
	Rules                 string          `json:"rules,omitempty"`
	Theme                 string          `json:"theme,omitempty"`
	Config                json.RawMessage `json:"config,omitempty"`
	Timeline              json.RawMessage `json:"timeline,omitempty"`
	StartDate             *time.Time      `json:"start_date,omitempty"`
	EndDate               *time.Time      `json:"end_date,omitempty"`
	RegistrationStartDate *time.Time      `json:"registration_start_date,omitempty"`
	RegistrationEndDate   *time.Time      `json:"registration_end_date,omitempty"`
	CreatedAt             time.Time       `json:"created_at"` // UTC
}

func (ev *Event) IsMentorship() bool { return ev.Type == TypeMentorship }

// Registration links one user to one event; unique on the pair.
type Registration struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	EventID          string          `json:"event_id"`
	TeamID           string          `json:"team_id,omitempty"`
	Status           string          `json:"status"`
	CustomAnswers    json.RawMessage `json:"custom_answers,omitempty"`
	DomainPriorities []string        `json:"domain_priorities,omitempty"`
	AssignedDomain   string          `json:"assigned_domain,omitempty"`
	CreatedAt        time.Time       `json:"created_at"` // UTC
}

// Registrant is the admin-list projection of a Registration joined with its user.
type Registrant struct {
	Registration
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// Team groups registrations under an event via a join code.
type Team struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	JoinCode  string    `json:"join_code"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// Award is a per-event prize attributed to a team or a single user.
type Award struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	TeamID      string    `json:"team_id,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	Title       string    `json:"title"`
	Rank        int       `json:"rank"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// GetFilter selects a single event; exactly one field should be set.
type GetFilter struct {
	ID   string
	Slug string
}

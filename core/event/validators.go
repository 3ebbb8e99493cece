package event

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/MSTC-DAU/mstc/core"
)

var (
	eventTypeTag  = "eventtype"
	eventTypeText = "invalid event type"
)

func init() {
	_ = core.Validate.RegisterValidation(eventTypeTag, eventTypeValidation)
	core.RegisterCustomTranslation(eventTypeTag, eventTypeText)
}

func eventTypeValidation(fl validator.FieldLevel) bool {
	return Type(fl.Field().String()).IsValid()
}

// NewEvent contains information needed to create a new Event.
type NewEvent struct {
	Slug        string          `json:"slug" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Type        Type            `json:"type" validate:"required,eventtype"`
	Description string          `json:"description"`
	Theme       string          `json:"theme"`
	Config      json.RawMessage `json:"config"`
}

func (ne *NewEvent) Validate() error {
	ne.Slug = core.CleanString(ne.Slug, true /* lower */)
	ne.Title = core.CleanString(ne.Title)
	return core.Validate.Struct(ne)
}

// NewAward contains information needed to record a prize for an event.
type NewAward struct {
	TeamID      string `json:"team_id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title" validate:"required"`
	Rank        int    `json:"rank"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (na *NewAward) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Category = core.CleanString(na.Category)
	return core.Validate.Struct(na)
}

// NewRegistration is the sign-up payload: ranked domain preferences and any
// event-specific answers.
type NewRegistration struct {
	DomainPriorities []string        `json:"domain_priorities"`
	CustomAnswers    json.RawMessage `json:"custom_answers"`
}

func (nr *NewRegistration) Validate() error {
	cleaned := nr.DomainPriorities[:0]
	for _, p := range nr.DomainPriorities {
		if p = core.CleanString(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	nr.DomainPriorities = cleaned
	return core.Validate.Struct(nr)
}

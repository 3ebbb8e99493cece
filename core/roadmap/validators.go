package roadmap

import "github.com/MSTC-DAU/mstc/core"

// NewRoadmap is the admin publishing payload.
type NewRoadmap struct {
	EventID string `json:"event_id" validate:"required"`
	Domain  string `json:"domain"`
	Weeks   []Week `json:"weeks" validate:"required,min=1"`
}

func (nr *NewRoadmap) Validate() error {
	nr.Domain = core.CleanString(nr.Domain)
	return core.Validate.Struct(nr)
}

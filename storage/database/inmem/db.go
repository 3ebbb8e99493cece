// Package inmemdb provides in-memory repository implementations used by
// service and API tests.
package inmemdb

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MSTC-DAU/mstc/core/club"
	"github.com/MSTC-DAU/mstc/core/event"
	"github.com/MSTC-DAU/mstc/core/roadmap"
	"github.com/MSTC-DAU/mstc/core/setting"
	"github.com/MSTC-DAU/mstc/core/user"
)

type DB struct {
	mutex sync.RWMutex

	users         map[string]*user.User
	events        map[string]*event.Event
	registrations map[string]*event.Registration
	teams         map[string]*event.Team
	awards        map[string]*event.Award
	roadmaps      map[string]*roadmap.Roadmap
	checkpoints   map[string]*roadmap.Checkpoint
	mentors       map[string]*club.Mentor
	photos        map[string]*club.TeamPhoto
	notes         map[string]*club.LegacyNote
	settings      map[string]*setting.SystemSetting
}

func NewDB() *DB {
	return &DB{
		users:         make(map[string]*user.User),
		events:        make(map[string]*event.Event),
		registrations: make(map[string]*event.Registration),
		teams:         make(map[string]*event.Team),
		awards:        make(map[string]*event.Award),
		roadmaps:      make(map[string]*roadmap.Roadmap),
		checkpoints:   make(map[string]*roadmap.Checkpoint),
		mentors:       make(map[string]*club.Mentor),
		photos:        make(map[string]*club.TeamPhoto),
		notes:         make(map[string]*club.LegacyNote),
		settings:      make(map[string]*setting.SystemSetting),
	}
}

func newPK() string { return uuid.New().String() }

func now() time.Time { return time.Now().UTC() }

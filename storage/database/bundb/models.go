// Package bunrepos implements the core repository interfaces on top of
// postgres through bun.
package bunrepos

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/MSTC-DAU/mstc/core/club"
	"github.com/MSTC-DAU/mstc/core/event"
	"github.com/MSTC-DAU/mstc/core/roadmap"
	"github.com/MSTC-DAU/mstc/core/setting"
	"github.com/MSTC-DAU/mstc/core/user"
)

type dbUser struct {
	bun.BaseModel `bun:"table:user,alias:u"`

	ID            string     `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email         string     `bun:"email,notnull"`
	Name          string     `bun:"name,nullzero"`
	Image         string     `bun:"image,nullzero"`
	Role          user.Role  `bun:"role,notnull,default:'student'"`
	CollegeID     string     `bun:"college_id,nullzero"`
	XPPoints      int        `bun:"xp_points,notnull,default:0"`
	Bio           string     `bun:"bio,nullzero"`
	GithubID      string     `bun:"github_id,nullzero"`
	LinkedinID    string     `bun:"linkedin_id,nullzero"`
	EmailVerified *time.Time `bun:"email_verified,nullzero"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:now()"`
}

func (u *dbUser) unbox() user.User {
	return user.User{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Image:         u.Image,
		Role:          u.Role,
		CollegeID:     u.CollegeID,
		XPPoints:      u.XPPoints,
		Bio:           u.Bio,
		GithubID:      u.GithubID,
		LinkedinID:    u.LinkedinID,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt.UTC(),
	}
}

func boxUser(usr user.User) dbUser {
	return dbUser{
		ID:            usr.ID,
		Email:         usr.Email,
		Name:          usr.Name,
		Image:         usr.Image,
		Role:          usr.Role,
		CollegeID:     usr.CollegeID,
		XPPoints:      usr.XPPoints,
		Bio:           usr.Bio,
		GithubID:      usr.GithubID,
		LinkedinID:    usr.LinkedinID,
		EmailVerified: usr.EmailVerified,
	}
}

type dbEvent struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID                    string          `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Slug                  string          `bun:"slug,notnull"`
	Title                 string          `bun:"title,notnull"`
	Type                  event.Type      `bun:"type,notnull"`
	Status                event.Status    `bun:"status,notnull,default:'upcoming'"`
	PosterURL             string          `bun:"poster_url,nullzero"`
	Description           string          `bun:"description,nullzero"`
	Rules                 string          `bun:"rules,nullzero"`
	Theme                 string          `bun:"theme,nullzero"`
	Config                json.RawMessage `bun:"config,nullzero,type:jsonb"`
	Timeline              json.RawMessage `bun:"timeline,nullzero,type:jsonb"`
	StartDate             *time.Time      `bun:"start_date,nullzero"`
	EndDate               *time.Time      `bun:"end_date,nullzero"`
	RegistrationStartDate *time.Time      `bun:"registration_start_date,nullzero"`
	RegistrationEndDate   *time.Time      `bun:"registration_end_date,nullzero"`
	CreatedAt             time.Time       `bun:"created_at,nullzero,notnull,default:now()"`
}

func (e *dbEvent) unbox() event.Event {
	return event.Event{
		ID:                    e.ID,
		Slug:                  e.Slug,
		Title:                 e.Title,
		Type:                  e.Type,
		Status:                e.Status,
		PosterURL:             e.PosterURL,
		Description:           e.Description,
		Rules:                 e.Rules,
		Theme:                 e.Theme,
		Config:                e.Config,
		Timeline:              e.Timeline,
		StartDate:             e.StartDate,
		EndDate:               e.EndDate,
		RegistrationStartDate: e.RegistrationStartDate,
		RegistrationEndDate:   e.RegistrationEndDate,
		CreatedAt:             e.CreatedAt.UTC(),
	}
}

func boxEvent(ev event.Event) dbEvent {
	return dbEvent{
		ID:                    ev.ID,
		Slug:                  ev.Slug,
		Title:                 ev.Title,
		Type:                  ev.Type,
		Status:                ev.Status,
		PosterURL:             ev.PosterURL,
		Description:           ev.Description,
		Rules:                 ev.Rules,
		Theme:                 ev.Theme,
		Config:                ev.Config,
		Timeline:              ev.Timeline,
		StartDate:             ev.StartDate,
		EndDate:               ev.EndDate,
		RegistrationStartDate: ev.RegistrationStartDate,
		RegistrationEndDate:   ev.RegistrationEndDate,
	}
}

type dbRegistration struct {
	bun.BaseModel `bun:"table:registrations,alias:r"`

	ID               string          `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID           string          `bun:"user_id,notnull,type:uuid"`
	EventID          string          `bun:"event_id,notnull,type:uuid"`
	TeamID           string          `bun:"team_id,nullzero,type:uuid"`
	Status           string          `bun:"status,notnull,default:'pending'"`
	CustomAnswers    json.RawMessage `bun:"custom_answers,nullzero,type:jsonb"`
	DomainPriorities []string        `bun:"domain_priorities,nullzero,type:jsonb"`
	AssignedDomain   string          `bun:"assigned_domain,nullzero"`
	CreatedAt        time.Time       `bun:"created_at,nullzero,notnull,default:now()"`

	User *dbUser `bun:"rel:belongs-to,join:user_id=id"`
}

func (r *dbRegistration) unbox() event.Registration {
	return event.Registration{
		ID:               r.ID,
		UserID:           r.UserID,
		EventID:          r.EventID,
		TeamID:           r.TeamID,
		Status:           r.Status,
		CustomAnswers:    r.CustomAnswers,
		DomainPriorities: r.DomainPriorities,
		AssignedDomain:   r.AssignedDomain,
		CreatedAt:        r.CreatedAt.UTC(),
	}
}

func boxRegistration(reg event.Registration) dbRegistration {
	return dbRegistration{
		ID:               reg.ID,
		UserID:           reg.UserID,
		EventID:          reg.EventID,
		TeamID:           reg.TeamID,
		Status:           reg.Status,
		CustomAnswers:    reg.CustomAnswers,
		DomainPriorities: reg.DomainPriorities,
		AssignedDomain:   reg.AssignedDomain,
	}
}

type dbTeam struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	EventID   string    `bun:"event_id,notnull,type:uuid"`
	Name      string    `bun:"name,notnull"`
	JoinCode  string    `bun:"join_code,notnull"`
	CreatedBy string    `bun:"created_by,notnull,type:uuid"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:now()"`
}

func (t *dbTeam) unbox() event.Team {
	return event.Team{
		ID:        t.ID,
		EventID:   t.EventID,
		Name:      t.Name,
		JoinCode:  t.JoinCode,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt.UTC(),
	}
}

type dbAward struct {
	bun.BaseModel `bun:"table:event_awards,alias:aw"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	EventID     string    `bun:"event_id,notnull,type:uuid"`
	TeamID      string    `bun:"team_id,nullzero,type:uuid"`
	UserID      string    `bun:"user_id,nullzero,type:uuid"`
	Title       string    `bun:"title,notnull"`
	Rank        int       `bun:"rank,notnull,default:0"`
	Description string    `bun:"description,nullzero"`
	Category    string    `bun:"category,nullzero"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:now()"`
}

func (a *dbAward) unbox() event.Award {
	return event.Award{
		ID:          a.ID,
		EventID:     a.EventID,
		TeamID:      a.TeamID,
		UserID:      a.UserID,
		Title:       a.Title,
		Rank:        a.Rank,
		Description: a.Description,
		Category:    a.Category,
		CreatedAt:   a.CreatedAt.UTC(),
	}
}

type dbRoadmap struct {
	bun.BaseModel `bun:"table:roadmaps,alias:rm"`

	ID        string         `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	EventID   string         `bun:"event_id,notnull,type:uuid"`
	Domain    string         `bun:"domain,nullzero"`
	Content   []roadmap.Week `bun:"content,notnull,type:jsonb"`
	CreatedAt time.Time      `bun:"created_at,nullzero,notnull,default:now()"`
}

func (rm *dbRoadmap) unbox() roadmap.Roadmap {
	return roadmap.Roadmap{
		ID:        rm.ID,
		EventID:   rm.EventID,
		Domain:    rm.Domain,
		Weeks:     rm.Content,
		CreatedAt: rm.CreatedAt.UTC(),
	}
}

type dbCheckpoint struct {
	bun.BaseModel `bun:"table:checkpoints,alias:cp"`

	ID                string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	RegistrationID    string    `bun:"registration_id,notnull,type:uuid"`
	WeekNumber        int       `bun:"week_number,notnull"`
	SubmissionContent string    `bun:"submission_content,notnull"`
	MentorFeedback    string    `bun:"mentor_feedback,nullzero"`
	IsApproved        *bool     `bun:"is_approved"`
	CreatedAt         time.Time `bun:"created_at,nullzero,notnull,default:now()"`
}

func (cp *dbCheckpoint) unbox() roadmap.Checkpoint {
	return roadmap.Checkpoint{
		ID:                cp.ID,
		RegistrationID:    cp.RegistrationID,
		WeekNumber:        cp.WeekNumber,
		SubmissionContent: cp.SubmissionContent,
		MentorFeedback:    cp.MentorFeedback,
		IsApproved:        cp.IsApproved,
		CreatedAt:         cp.CreatedAt.UTC(),
	}
}

type dbMentor struct {
	bun.BaseModel `bun:"table:mentors,alias:m"`

	ID         string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name       string    `bun:"name,notnull"`
	Role       string    `bun:"role,notnull"`
	Image      string    `bun:"image,nullzero"`
	LinkedinID string    `bun:"linkedin_id,nullzero"`
	GithubID   string    `bun:"github_id,nullzero"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:now()"`
}

func (m *dbMentor) unbox() club.Mentor {
	return club.Mentor{
		ID:         m.ID,
		Name:       m.Name,
		Role:       m.Role,
		Image:      m.Image,
		LinkedinID: m.LinkedinID,
		GithubID:   m.GithubID,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

type dbTeamPhoto struct {
	bun.BaseModel `bun:"table:team_photos,alias:tp"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	URL         string    `bun:"url,notnull"`
	Description string    `bun:"description,nullzero"`
	IsHeader    bool      `bun:"is_header,notnull,default:false"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:now()"`
}

func (tp *dbTeamPhoto) unbox() club.TeamPhoto {
	return club.TeamPhoto{
		ID:          tp.ID,
		URL:         tp.URL,
		Description: tp.Description,
		IsHeader:    tp.IsHeader,
		CreatedAt:   tp.CreatedAt.UTC(),
	}
}

type dbLegacyNote struct {
	bun.BaseModel `bun:"table:legacy_notes,alias:ln"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID    string    `bun:"user_id,notnull,type:uuid"`
	Content   string    `bun:"content,notnull"`
	Role      string    `bun:"role,nullzero"`
	Tenure    string    `bun:"tenure,nullzero"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:now()"`
}

func (ln *dbLegacyNote) unbox() club.LegacyNote {
	return club.LegacyNote{
		ID:        ln.ID,
		UserID:    ln.UserID,
		Content:   ln.Content,
		Role:      ln.Role,
		Tenure:    ln.Tenure,
		CreatedAt: ln.CreatedAt.UTC(),
	}
}

type dbSetting struct {
	bun.BaseModel `bun:"table:system_settings,alias:ss"`

	Key         string `bun:"key,pk"`
	Value       string `bun:"value,notnull"`
	Description string `bun:"description,nullzero"`
}

func (s *dbSetting) unbox() setting.SystemSetting {
	return setting.SystemSetting{Key: s.Key, Value: s.Value, Description: s.Description}
}

// trapNoRowsErr swaps sql.ErrNoRows for the domain's not-found error.
func trapNoRowsErr(err, notFound error) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}

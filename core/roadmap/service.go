package roadmap

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/event"
	"github.com/MSTC-DAU/mstc/core/user"
)

var (
	// errors
	ErrNotFound           = errors.New("roadmap not found or not yet published")
	ErrCheckpointNotFound = errors.New("checkpoint not found")
)

type (
	Repository interface {
		CreateRoadmap(ctx context.Context, rm Roadmap) (Roadmap, error)
		// GetRoadmap returns the event's roadmap. An empty domain matches any
		// domain (non-mentorship events have a single event-scoped roadmap).
		GetRoadmap(ctx context.Context, eventID, domain string) (Roadmap, error)
		QueryRoadmaps(ctx context.Context) ([]Roadmap, error)

		CreateCheckpoint(ctx context.Context, cp Checkpoint) (Checkpoint, error)
		QueryCheckpoints(ctx context.Context, registrationID string) ([]Checkpoint, error)
		// UpdateCheckpointReview sets mentor feedback and the approval flag,
		// returning the checkpoint joined with participant and event.
		UpdateCheckpointReview(ctx context.Context, id, feedback string, approved *bool) (ReviewedCheckpoint, error)
	}

	// EventDirectory is the slice of the event service the roadmap flow needs.
	EventDirectory interface {
		GetBySlug(ctx context.Context, slug string) (event.Event, error)
		RegistrationFor(ctx context.Context, userID, eventID string) (event.Registration, error)
	}

	Service struct {
		repo   Repository
		events EventDirectory
		mail   core.EmailService
		logger core.Logger
		reval  core.Revalidator
	}
)

func NewService(repo Repository, events EventDirectory, mail core.EmailService, logger core.Logger, reval core.Revalidator) *Service {
	return &Service{repo: repo, events: events, mail: mail, logger: logger, reval: reval}
}

// Resolve builds the roadmap page for the viewer:
//  1. unknown slug -> event.ErrNotFound
//  2. no registration -> event.ErrRegistrationNotFound (caller redirects)
//  3. mentorship event, no assigned domain -> pending-assignment view echoing
//     the viewer's ranked priorities; no roadmap is fetched
//  4. no matching roadmap row -> not-published view
//  5. otherwise each week annotated with the latest submission's status
func (svc *Service) Resolve(ctx context.Context, actor user.User, slug string) (View, error) {
	ev, err := svc.events.GetBySlug(ctx, slug)
	if err != nil {
		return View{}, err
	}
	view := View{EventID: ev.ID, EventTitle: ev.Title, EventSlug: ev.Slug}

	reg, err := svc.events.RegistrationFor(ctx, actor.ID, ev.ID)
	if err != nil {
		return View{}, err
	}

	var domain string
	if ev.IsMentorship() {
		if reg.AssignedDomain == "" {
			view.State = StatePendingAssignment
			view.DomainPriorities = reg.DomainPriorities
			return view, nil
		}
		domain = reg.AssignedDomain
	}

	rm, err := svc.repo.GetRoadmap(ctx, ev.ID, domain)
	if err == ErrNotFound {
		view.State = StateNotPublished
		return view, nil
	}
	if err != nil {
		return View{}, err
	}

	cps, err := svc.repo.QueryCheckpoints(ctx, reg.ID)
	if err != nil {
		return View{}, err
	}
	latest := LatestByWeek(cps)

	view.State = StatePublished
	view.Domain = rm.Domain
	view.Weeks = make([]WeekView, 0, len(rm.Weeks))
	for _, week := range rm.Weeks {
		wv := WeekView{Week: week}
		if cp, ok := latest[week.ID]; ok {
			cp := cp
			wv.Submission = &cp
			wv.Status = cp.Status()
		} else {
			wv.Status = StatusPending
		}
		view.Weeks = append(view.Weeks, wv)
	}
	return view, nil
}

// SubmitCheckpoint records the actor's weekly submission. Submissions append;
// the view keeps the latest row per week ("Under Review" until approved).
func (svc *Service) SubmitCheckpoint(ctx context.Context, actor user.User, eventID string, weekNumber int, content string) (Checkpoint, error) {
	content = core.CleanString(content)
	if content == "" {
		return Checkpoint{}, core.NewValidationError(nil, core.FieldError{Field: "content", Error: "submission content is required"})
	}
	if weekNumber < 1 {
		return Checkpoint{}, core.NewValidationError(nil, core.FieldError{Field: "week_number", Error: "invalid week number"})
	}

	reg, err := svc.events.RegistrationFor(ctx, actor.ID, eventID)
	if err != nil {
		return Checkpoint{}, err
	}

	cp := Checkpoint{
		RegistrationID:    reg.ID,
		WeekNumber:        weekNumber,
		SubmissionContent: content,
	}
	cp, err = svc.repo.CreateCheckpoint(ctx, cp)
	if err != nil {
		return Checkpoint{}, err
	}
	svc.reval.Revalidate("/dashboard")
	return cp, nil
}

// ReviewCheckpoint records mentor feedback and the approval flag, then
// notifies the participant by email.
func (svc *Service) ReviewCheckpoint(ctx context.Context, actor user.User, checkpointID, feedback string, approved *bool) (ReviewedCheckpoint, error) {
	if !actor.IsAdmin() {
		return ReviewedCheckpoint{}, user.ErrPermissionDenied
	}

	rc, err := svc.repo.UpdateCheckpointReview(ctx, checkpointID, core.CleanString(feedback), approved)
	if err != nil {
		return ReviewedCheckpoint{}, err
	}

	if rc.ParticipantEmail != "" {
		status := rc.Status()
		body := fmt.Sprintf("Your week %d checkpoint for %s was reviewed. Status: %s.", rc.WeekNumber, rc.EventTitle, status)
		if rc.MentorFeedback != "" {
			body += "\n\nMentor feedback:\n" + rc.MentorFeedback
		}
		svc.mail.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: rc.ParticipantName, Address: rc.ParticipantEmail}},
			Subject: fmt.Sprintf("Checkpoint reviewed - %s week %d", rc.EventTitle, rc.WeekNumber),
			Body:    body,
		})
	}

	svc.reval.Revalidate("/dashboard")
	return rc, nil
}

// Create publishes a roadmap for an event (and domain, for mentorship events).
func (svc *Service) Create(ctx context.Context, actor user.User, nr NewRoadmap) (Roadmap, error) {
	if !actor.IsAdmin() {
		return Roadmap{}, user.ErrPermissionDenied
	}
	if err := nr.Validate(); err != nil {
		return Roadmap{}, err
	}
	rm, err := svc.repo.CreateRoadmap(ctx, Roadmap{
		EventID: nr.EventID,
		Domain:  nr.Domain,
		Weeks:   nr.Weeks,
	})
	if err != nil {
		return Roadmap{}, err
	}
	svc.reval.Revalidate("/roadmaps")
	return rm, nil
}

// QueryAll lists every published roadmap, for the public roadmaps page.
func (svc *Service) QueryAll(ctx context.Context) ([]Roadmap, error) {
	return svc.repo.QueryRoadmaps(ctx)
}

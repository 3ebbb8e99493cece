package main

import (
	"context"

	"github.com/MSTC-DAU/mstc/core/event"
	"github.com/MSTC-DAU/mstc/core/user"
)

// seed loads a minimal demo dataset: a convener, a student and a live
// mentorship event. Safe to run only against an empty database.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	convener, err := cli.usrRepo.CreateUser(ctx, user.User{
		Email: "convener@example.com",
		Name:  "Demo Convener",
		Role:  user.RoleConvener,
	})
	if err != nil {
		return err
	}

	student, err := cli.usrRepo.CreateUser(ctx, user.User{
		Email: "student@example.com",
		Name:  "Demo Student",
		Role:  user.RoleStudent,
	})
	if err != nil {
		return err
	}

	ev, err := cli.evtRepo.CreateEvent(ctx, event.Event{
		Slug:        "winter-of-code",
		Title:       "Winter of Code",
		Type:        event.TypeMentorship,
		Status:      event.StatusUpcoming,
		Description: "Season-long mentorship across club domains.",
	})
	if err != nil {
		return err
	}
	if _, err = cli.evtRepo.UpdateEventStatus(ctx, ev.ID, event.StatusLive); err != nil {
		return err
	}

	if _, err = cli.evtRepo.CreateRegistration(ctx, event.Registration{
		UserID:           student.ID,
		EventID:          ev.ID,
		Status:           "pending",
		DomainPriorities: []string{"Web Development", "Machine Learning"},
	}); err != nil {
		return err
	}

	logger.Printf("seeded: %s, %s, event %q\n", convener.Email, student.Email, ev.Slug)
	return nil
}

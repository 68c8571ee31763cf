package usecase

import (
	"context"
	"errors"
	"fmt"

	authrepo "meetingmate-backend/internal/auth/repository"
	"meetingmate-backend/internal/meeting/dto"
	"meetingmate-backend/pkg/gcal"
	"meetingmate-backend/pkg/googleauth"
)

// CalendarProvider is the slice of the Calendar API the browsing endpoints
// use. pkg/gcal implements it.
type CalendarProvider interface {
	ListUpcomingEvents(ctx context.Context, cred *googleauth.Credential) ([]gcal.Event, error)
	CreateEvent(ctx context.Context, cred *googleauth.Credential, input gcal.CreateEventInput) (*gcal.Event, error)
	GetEvent(ctx context.Context, cred *googleauth.Credential, eventID string) (*gcal.Event, error)
}

// CalendarUsecase exposes the user's Google Calendar to the API.
type CalendarUsecase interface {
	ListEvents(ctx context.Context, userID string) ([]gcal.Event, error)
	CreateEvent(ctx context.Context, userID string, req dto.CreateEventRequest) (*gcal.Event, error)
	GetEvent(ctx context.Context, userID, eventID string) (*gcal.Event, error)
}

type calendarUsecase struct {
	users    authrepo.UserRepository
	creds    CredentialResolver
	calendar CalendarProvider
}

func NewCalendarUsecase(users authrepo.UserRepository, creds CredentialResolver, calendar CalendarProvider) CalendarUsecase {
	return &calendarUsecase{users: users, creds: creds, calendar: calendar}
}

func (u *calendarUsecase) ListEvents(ctx context.Context, userID string) ([]gcal.Event, error) {
	cred, err := u.credential(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.calendar.ListUpcomingEvents(ctx, cred)
}

func (u *calendarUsecase) CreateEvent(ctx context.Context, userID string, req dto.CreateEventRequest) (*gcal.Event, error) {
	if req.Title == "" || req.Start == "" || req.End == "" {
		return nil, errors.New("missing required fields: title, start, end")
	}

	cred, err := u.credential(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.calendar.CreateEvent(ctx, cred, gcal.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		Attendees:   req.Attendees,
	})
}

func (u *calendarUsecase) GetEvent(ctx context.Context, userID, eventID string) (*gcal.Event, error) {
	cred, err := u.credential(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.calendar.GetEvent(ctx, cred, eventID)
}

func (u *calendarUsecase) credential(ctx context.Context, userID string) (*googleauth.Credential, error) {
	user, err := u.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found: %s", userID)
	}
	return u.creds.Resolve(ctx, user)
}

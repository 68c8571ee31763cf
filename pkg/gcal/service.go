package gcal

import (
	"context"
	"fmt"
	"time"

	"meetingmate-backend/pkg/googleauth"

	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Event is the calendar event shape the API layer returns.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Attendees   int      `json:"attendees,omitempty"`
	MeetingType string   `json:"meetingType,omitempty"`
	MeetingLink string   `json:"meetingLink,omitempty"`
	HTMLLink    string   `json:"htmlLink,omitempty"`
	Description string   `json:"description,omitempty"`
	Emails      []string `json:"attendeeEmails,omitempty"`
}

// CreateEventInput carries the fields for a user-created event.
type CreateEventInput struct {
	Title       string
	Description string
	Start       string // RFC3339
	End         string // RFC3339
	Attendees   []string
}

// Service wraps the Google Calendar v3 API for task deadline reminders and
// the calendar browsing endpoints.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) calendarService(ctx context.Context, cred *googleauth.Credential) (*calendarapi.Service, error) {
	srv, err := calendarapi.NewService(ctx, option.WithHTTPClient(cred.HTTPClient()))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}
	return srv, nil
}

// CreateDeadlineEvent creates an all-day event on the primary calendar for a
// task due date. Returns the created event ID.
func (s *Service) CreateDeadlineEvent(ctx context.Context, cred *googleauth.Credential, description, meetingContext string, due time.Time) (string, error) {
	srv, err := s.calendarService(ctx, cred)
	if err != nil {
		return "", err
	}

	day := due.UTC().Format("2006-01-02")
	nextDay := due.UTC().AddDate(0, 0, 1).Format("2006-01-02")

	event := &calendarapi.Event{
		Summary:     "Task: " + description,
		Description: "Task from meeting: " + meetingContext,
		Start:       &calendarapi.EventDateTime{Date: day},
		End:         &calendarapi.EventDateTime{Date: nextDay},
		Reminders: &calendarapi.EventReminders{
			UseDefault: false,
			Overrides: []*calendarapi.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := srv.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create calendar event: %v", err)
	}
	return created.Id, nil
}

// ListUpcomingEvents returns the next 30 days of primary-calendar events,
// with Google Meet links surfaced when present.
func (s *Service) ListUpcomingEvents(ctx context.Context, cred *googleauth.Credential) ([]Event, error) {
	srv, err := s.calendarService(ctx, cred)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resp, err := srv.Events.List("primary").
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.AddDate(0, 0, 30).Format(time.RFC3339)).
		MaxResults(50).
		SingleEvents(true).
		OrderBy("startTime").
		Fields("items(id,summary,start,end,attendees,conferenceData,hangoutLink)").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list calendar events: %v", err)
	}

	var events []Event
	for _, item := range resp.Items {
		start := eventTime(item.Start)
		end := eventTime(item.End)
		if start == "" || end == "" {
			continue
		}

		meetingLink := ""
		if item.ConferenceData != nil {
			for _, entry := range item.ConferenceData.EntryPoints {
				if entry.EntryPointType == "video" {
					meetingLink = entry.Uri
					break
				}
			}
		}
		if meetingLink == "" && item.HangoutLink != "" {
			meetingLink = item.HangoutLink
		}

		attendees := 0
		for _, a := range item.Attendees {
			if a.ResponseStatus != "declined" {
				attendees++
			}
		}

		event := Event{
			ID:          item.Id,
			Title:       eventTitle(item.Summary),
			Start:       start,
			End:         end,
			Attendees:   attendees,
			MeetingLink: meetingLink,
		}
		if meetingLink != "" {
			event.MeetingType = "Google Meet"
		}
		events = append(events, event)
	}
	return events, nil
}

// CreateEvent creates a timed event on the primary calendar and returns its
// ID and HTML link.
func (s *Service) CreateEvent(ctx context.Context, cred *googleauth.Credential, input CreateEventInput) (*Event, error) {
	srv, err := s.calendarService(ctx, cred)
	if err != nil {
		return nil, err
	}

	event := &calendarapi.Event{
		Summary:     input.Title,
		Description: input.Description,
		Start:       &calendarapi.EventDateTime{DateTime: input.Start, TimeZone: "UTC"},
		End:         &calendarapi.EventDateTime{DateTime: input.End, TimeZone: "UTC"},
	}
	for _, email := range input.Attendees {
		if email != "" {
			event.Attendees = append(event.Attendees, &calendarapi.EventAttendee{Email: email})
		}
	}

	created, err := srv.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar event: %v", err)
	}
	return &Event{ID: created.Id, Title: created.Summary, HTMLLink: created.HtmlLink}, nil
}

// GetEvent fetches a single primary-calendar event.
func (s *Service) GetEvent(ctx context.Context, cred *googleauth.Credential, eventID string) (*Event, error) {
	srv, err := s.calendarService(ctx, cred)
	if err != nil {
		return nil, err
	}

	item, err := srv.Events.Get("primary", eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to get calendar event %s: %v", eventID, err)
	}

	event := &Event{
		ID:          item.Id,
		Title:       eventTitle(item.Summary),
		Start:       eventTime(item.Start),
		End:         eventTime(item.End),
		Description: item.Description,
		HTMLLink:    item.HtmlLink,
	}
	for _, a := range item.Attendees {
		event.Emails = append(event.Emails, a.Email)
	}
	return event, nil
}

func eventTime(edt *calendarapi.EventDateTime) string {
	if edt == nil {
		return ""
	}
	if edt.DateTime != "" {
		return edt.DateTime
	}
	return edt.Date
}

func eventTitle(summary string) string {
	if summary == "" {
		return "Untitled Event"
	}
	return summary
}

package gmailscan

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"meetingmate-backend/pkg/googleauth"

	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// ParsedTask is an action item recovered from an email body.
type ParsedTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// EmailSummary is a meeting summary recovered from one Gmail message.
type EmailSummary struct {
	EmailID    string
	Title      string
	Summary    string
	Tasks      []ParsedTask
	Sender     string
	Subject    string
	ReceivedAt time.Time
}

// Service scans Gmail for meeting notes shared via email, such as the
// "Notes:" messages Google Meet sends after a recorded call.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// ScanForSummaries searches the last daysBack days of mail for meeting
// summary emails and parses each one into an EmailSummary. Messages that
// fail to parse are skipped, not fatal.
func (s *Service) ScanForSummaries(ctx context.Context, cred *googleauth.Credential, daysBack int) ([]EmailSummary, error) {
	srv, err := gmailapi.NewService(ctx, option.WithHTTPClient(cred.HTTPClient()))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}

	if daysBack <= 0 {
		daysBack = 7
	}
	since := time.Now().AddDate(0, 0, -daysBack)
	query := strings.Join([]string{
		"after:" + since.Format("2006/01/02"),
		"(",
		"subject:Notes:",
		"OR subject:(meeting summary)",
		"OR subject:(meeting notes)",
		"OR subject:(transcript)",
		"OR subject:(recording)",
		"OR subject:(action items)",
		"OR subject:(meeting minutes)",
		")",
	}, " ")

	listResp, err := srv.Users.Messages.List("me").Q(query).MaxResults(100).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to search Gmail: %v", err)
	}

	var summaries []EmailSummary
	for _, ref := range listResp.Messages {
		msg, err := srv.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			log.Printf("[GmailScan] Failed to fetch message %s: %v", ref.Id, err)
			continue
		}

		summary, ok := extractSummary(msg)
		if !ok {
			continue
		}
		summary.EmailID = ref.Id
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func extractSummary(msg *gmailapi.Message) (EmailSummary, bool) {
	if msg.Payload == nil {
		return EmailSummary{}, false
	}

	subject := headerValue(msg.Payload.Headers, "Subject")
	sender := headerValue(msg.Payload.Headers, "From")
	receivedAt := parseEmailDate(headerValue(msg.Payload.Headers, "Date"))

	body := ExtractBody(msg.Payload)
	if body == "" {
		return EmailSummary{}, false
	}

	if !IsMeetingSummaryEmail(subject, body, sender) {
		return EmailSummary{}, false
	}

	summaryText, tasks := ParseMeetingContent(body)
	if summaryText == "" && len(tasks) == 0 {
		return EmailSummary{}, false
	}

	return EmailSummary{
		Title:      CleanMeetingTitle(subject),
		Summary:    summaryText,
		Tasks:      tasks,
		Sender:     sender,
		Subject:    subject,
		ReceivedAt: receivedAt,
	}, true
}

func headerValue(headers []*gmailapi.MessagePartHeader, name string) string {
	for _, h := range headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

func parseEmailDate(value string) time.Time {
	// Strip trailing comments like " (PDT)".
	if idx := strings.Index(value, " ("); idx > 0 {
		value = value[:idx]
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, "Mon, 2 Jan 2006 15:04:05 -0700"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}

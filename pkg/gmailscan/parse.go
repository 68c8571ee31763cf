package gmailscan

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	bulletRe     = regexp.MustCompile(`^[\-\*\x{2022}\d\.\)]\s*`)
	bulletTrimRe = regexp.MustCompile(`^[\-\*\x{2022}\d\.\)\s]+`)

	subjectKeywords = []string{
		"meeting summary", "meeting notes", "meeting transcript",
		"meeting recording", "action items", "meeting minutes",
		"zoom recording", "teams recording", "google meet recording",
	}
	bodyKeywords = []string{
		"action items", "next steps", "follow up", "decisions made",
		"meeting attendees", "agenda", "discussion points",
		"transcript", "recording", "summary",
	}
	meetingSenders = []string{"zoom", "teams", "meet", "webex", "google.com"}

	actionHeaders  = []string{"action items", "next steps", "follow up", "tasks", "to do", "action points"}
	summaryHeaders = []string{"summary", "overview", "discussion", "meeting notes", "notes"}

	titlePrefixes = []string{
		"meeting summary:", "meeting notes:", "meeting transcript:",
		"recording:", "summary:", "notes:", "fwd:", "re:",
	}
	titleNoisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\[zoom\]`),
		regexp.MustCompile(`(?i)\[teams\]`),
		regexp.MustCompile(`(?i)\[meet\]`),
		regexp.MustCompile(`(?i)\[recording\]`),
		regexp.MustCompile(`(?i)- recording`),
		regexp.MustCompile(`(?i)recording -`),
		regexp.MustCompile(`(?i)transcript -`),
	}
)

// ExtractBody pulls the text body out of a message payload, preferring
// plain text parts and falling back to tag-stripped HTML.
func ExtractBody(payload *gmailapi.MessagePart) string {
	var body string

	if payload.Body != nil && payload.Body.Data != "" {
		body = decodeBase64URL(payload.Body.Data)
	} else {
		for _, part := range payload.Parts {
			if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
				body += decodeBase64URL(part.Body.Data)
			}
		}
		if body == "" {
			for _, part := range payload.Parts {
				if part.MimeType == "text/html" && part.Body != nil && part.Body.Data != "" {
					body = htmlTagRe.ReplaceAllString(decodeBase64URL(part.Body.Data), "")
					break
				}
			}
		}
	}

	return strings.TrimSpace(body)
}

func decodeBase64URL(data string) string {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	return ""
}

// IsMeetingSummaryEmail decides whether an email is worth parsing as a
// meeting summary. "Notes:" subjects always qualify; otherwise the subject
// and body (or sender) both need meeting indicators.
func IsMeetingSummaryEmail(subject, body, sender string) bool {
	if strings.HasPrefix(subject, "Notes:") {
		return true
	}

	subjectLower := strings.ToLower(subject)
	bodyLower := strings.ToLower(body)
	senderLower := strings.ToLower(sender)

	hasSummarySubject := containsAny(subjectLower, subjectKeywords)
	hasContentIndicators := containsAny(bodyLower, bodyKeywords)
	fromMeetingPlatform := containsAny(senderLower, meetingSenders)

	return (hasSummarySubject && hasContentIndicators) || (fromMeetingPlatform && hasSummarySubject)
}

// CleanMeetingTitle strips notification prefixes and platform noise from
// an email subject, leaving the meeting title.
func CleanMeetingTitle(subject string) string {
	title := subject

	if strings.HasPrefix(title, "Notes:") {
		title = strings.TrimSpace(title[len("Notes:"):])
	}

	for _, prefix := range titlePrefixes {
		if strings.HasPrefix(strings.ToLower(title), prefix) {
			title = strings.TrimSpace(title[len(prefix):])
		}
	}

	for _, pattern := range titleNoisePatterns {
		title = strings.TrimSpace(pattern.ReplaceAllString(title, ""))
	}

	if title == "" {
		return "Meeting Summary"
	}
	return title
}

// ParseMeetingContent splits an email body into summary text and action
// items, keyed off common section headers.
func ParseMeetingContent(body string) (string, []ParsedTask) {
	var summaryLines []string
	var tasks []ParsedTask
	section := ""

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lineLower := strings.ToLower(line)
		if containsAny(lineLower, actionHeaders) {
			section = "actions"
			continue
		}
		if containsAny(lineLower, summaryHeaders) {
			section = "summary"
			continue
		}

		switch section {
		case "actions":
			if bulletRe.MatchString(line) {
				text := strings.TrimSpace(bulletTrimRe.ReplaceAllString(line, ""))
				if len(text) > 5 {
					tasks = append(tasks, ParsedTask{
						ID:   fmt.Sprintf("%d", len(tasks)+1),
						Text: text,
					})
				}
			}
		case "summary":
			if len(line) > 20 && !hasMailHeaderPrefix(lineLower) {
				summaryLines = append(summaryLines, line)
			}
		default:
			if bulletRe.MatchString(line) {
				text := strings.TrimSpace(bulletTrimRe.ReplaceAllString(line, ""))
				if len(text) > 5 && containsAny(strings.ToLower(text), []string{"will", "should", "need", "action", "follow", "complete"}) {
					tasks = append(tasks, ParsedTask{
						ID:   fmt.Sprintf("%d", len(tasks)+1),
						Text: text,
					})
				}
			} else if len(line) > 30 {
				summaryLines = append(summaryLines, line)
			}
		}
	}

	if len(summaryLines) > 10 {
		summaryLines = summaryLines[:10]
	}
	summary := strings.Join(summaryLines, "\n")
	if len(summary) > 1000 {
		summary = summary[:1000] + "..."
	}

	return summary, tasks
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

func hasMailHeaderPrefix(lineLower string) bool {
	for _, prefix := range []string{"from:", "to:", "subject:", "date:"} {
		if strings.HasPrefix(lineLower, prefix) {
			return true
		}
	}
	return false
}

package gmailscan

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gmailapi "google.golang.org/api/gmail/v1"
)

func TestIsMeetingSummaryEmail(t *testing.T) {
	t.Run("notes prefix always qualifies", func(t *testing.T) {
		assert.True(t, IsMeetingSummaryEmail("Notes: Weekly Sync", "anything", "random@example.com"))
	})

	t.Run("subject and body indicators", func(t *testing.T) {
		assert.True(t, IsMeetingSummaryEmail(
			"Meeting summary for Q3 planning",
			"Here are the action items from today.",
			"alice@example.com",
		))
	})

	t.Run("subject alone is not enough", func(t *testing.T) {
		assert.False(t, IsMeetingSummaryEmail(
			"Meeting summary for Q3 planning",
			"see attached",
			"alice@example.com",
		))
	})

	t.Run("meeting platform sender with summary subject", func(t *testing.T) {
		assert.True(t, IsMeetingSummaryEmail(
			"Zoom recording is ready",
			"see attached",
			"no-reply@zoom.us",
		))
	})

	t.Run("unrelated email", func(t *testing.T) {
		assert.False(t, IsMeetingSummaryEmail("Your invoice", "pay now", "billing@example.com"))
	})
}

func TestCleanMeetingTitle(t *testing.T) {
	assert.Equal(t, "Weekly Sync", CleanMeetingTitle("Notes: Weekly Sync"))
	assert.Equal(t, "Q3 Planning", CleanMeetingTitle("Meeting summary: Q3 Planning"))
	assert.Equal(t, "Standup", CleanMeetingTitle("Fwd: Standup"))
	assert.Equal(t, "Design Review", CleanMeetingTitle("Design Review [Zoom]"))
	assert.Equal(t, "Meeting Summary", CleanMeetingTitle("Notes:"))
}

func TestParseMeetingContentSections(t *testing.T) {
	body := `Summary
The team reviewed the Q3 launch timeline and agreed to move the beta forward.
We also walked through the open incident backlog in detail.

Action Items
- Ship the beta build by Friday
- Update the incident runbook
* x
`

	summary, tasks := ParseMeetingContent(body)

	assert.Contains(t, summary, "Q3 launch timeline")
	assert.Contains(t, summary, "incident backlog")
	require.Len(t, tasks, 2)
	assert.Equal(t, "1", tasks[0].ID)
	assert.Equal(t, "Ship the beta build by Friday", tasks[0].Text)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, "Update the incident runbook", tasks[1].Text)
}

func TestParseMeetingContentAutoDetect(t *testing.T) {
	body := `Thanks everyone for joining the call today, good discussion all around.
- Bob will complete the migration script before Monday
- lunch
`

	summary, tasks := ParseMeetingContent(body)

	assert.Contains(t, summary, "Thanks everyone")
	require.Len(t, tasks, 1)
	assert.Equal(t, "Bob will complete the migration script before Monday", tasks[0].Text)
}

func TestExtractBodyMultipart(t *testing.T) {
	encode := func(s string) string {
		return base64.URLEncoding.EncodeToString([]byte(s))
	}

	payload := &gmailapi.MessagePart{
		Parts: []*gmailapi.MessagePart{
			{MimeType: "text/html", Body: &gmailapi.MessagePartBody{Data: encode("<p>html version</p>")}},
			{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{Data: encode("plain version")}},
		},
	}

	assert.Equal(t, "plain version", ExtractBody(payload))
}

func TestExtractBodyHTMLFallback(t *testing.T) {
	payload := &gmailapi.MessagePart{
		Parts: []*gmailapi.MessagePart{
			{MimeType: "text/html", Body: &gmailapi.MessagePartBody{
				Data: base64.URLEncoding.EncodeToString([]byte("<p>only html</p>")),
			}},
		},
	}

	assert.Equal(t, "only html", ExtractBody(payload))
}

func TestExtractBodySinglePart(t *testing.T) {
	payload := &gmailapi.MessagePart{
		Body: &gmailapi.MessagePartBody{
			Data: base64.RawURLEncoding.EncodeToString([]byte("  single part body \n")),
		},
	}

	assert.Equal(t, "single part body", ExtractBody(payload))
}

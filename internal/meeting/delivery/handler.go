package delivery

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"meetingmate-backend/internal/meeting/dto"
	"meetingmate-backend/internal/meeting/usecase"
	"meetingmate-backend/internal/notification"
	"meetingmate-backend/pkg/gcal"

	"github.com/gin-gonic/gin"
)

type MeetingHandler struct {
	meetingUsecase  usecase.MeetingUsecase
	calendarUsecase usecase.CalendarUsecase
	ingestUsecase   usecase.IngestUsecase
	notifications   *notification.Service
}

func NewMeetingHandler(
	meetingUc usecase.MeetingUsecase,
	calendarUc usecase.CalendarUsecase,
	ingestUc usecase.IngestUsecase,
	notifications *notification.Service,
) *MeetingHandler {
	return &MeetingHandler{
		meetingUsecase:  meetingUc,
		calendarUsecase: calendarUc,
		ingestUsecase:   ingestUc,
		notifications:   notifications,
	}
}

// GET /meetings/summaries
func (h *MeetingHandler) ListSummaries(c *gin.Context) {
	summaries, err := h.meetingUsecase.ListSummaries(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve summaries"})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GET /meetings/summaries/:id
func (h *MeetingHandler) GetSummary(c *gin.Context) {
	summary, err := h.meetingUsecase.GetSummary(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve summary"})
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meeting summary not found"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /tasks
func (h *MeetingHandler) ListTasks(c *gin.Context) {
	tasks, err := h.meetingUsecase.ListTasks(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/google-tasks
func (h *MeetingHandler) ListGoogleTasks(c *gin.Context) {
	tasks, err := h.meetingUsecase.ListGoogleTasks(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch Google Tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// POST /tasks/sync/:id
func (h *MeetingHandler) SyncTasks(c *gin.Context) {
	result, err := h.meetingUsecase.SyncRecord(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync tasks to Google Tasks"})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meeting summary not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /tasks/sync-all
func (h *MeetingHandler) SyncAllTasks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.meetingUsecase.SyncAll(c.Request.Context(), c.GetString("userID"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync tasks"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// PATCH /tasks/:summaryId/:taskId/status
func (h *MeetingHandler) UpdateTaskStatus(c *gin.Context) {
	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completed field is required"})
		return
	}

	result, err := h.meetingUsecase.UpdateTaskStatus(
		c.Request.Context(),
		c.GetString("userID"),
		c.Param("summaryId"),
		c.Param("taskId"),
		*req.Completed,
	)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meeting summary not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /meetings/scan-gmail
func (h *MeetingHandler) ScanGmail(c *gin.Context) {
	daysBack, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	result, err := h.meetingUsecase.ScanGmail(c.Request.Context(), c.GetString("userID"), daysBack)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to scan Gmail"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /meetings/sync
func (h *MeetingHandler) RunIngestion(c *gin.Context) {
	report, err := h.ingestUsecase.RunForUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"changes_seen":    report.ChangesSeen,
		"records_created": report.RecordsCreated,
	})
}

// GET /calendar/events
func (h *MeetingHandler) ListCalendarEvents(c *gin.Context) {
	events, err := h.calendarUsecase.ListEvents(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch calendar events"})
		return
	}
	if events == nil {
		events = []gcal.Event{}
	}
	c.JSON(http.StatusOK, events)
}

// POST /calendar/events
func (h *MeetingHandler) CreateCalendarEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields: title, start, end"})
		return
	}

	event, err := h.calendarUsecase.CreateEvent(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create calendar event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"eventId":  event.ID,
		"htmlLink": event.HTMLLink,
	})
}

// GET /calendar/events/:id
func (h *MeetingHandler) GetCalendarEvent(c *gin.Context) {
	event, err := h.calendarUsecase.GetEvent(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch calendar event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// GET /notifications
func (h *MeetingHandler) ListNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	feed, err := h.notifications.List(c.GetString("userID"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, feed)
}

// POST /notifications/:id/mark-read
func (h *MeetingHandler) MarkNotificationRead(c *gin.Context) {
	// The feed is derived, not stored; acknowledge and move on.
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read"})
}

// GET /notifications/unread-count
func (h *MeetingHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifications.UnreadCount(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"unreadCount": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

// POST /webhooks/drive
//
// Google posts an empty body; everything is in the X-Goog-* headers. The
// channel token carries our user ID. Drive requires a 2xx within 10
// seconds, so ingestion runs in the background.
func (h *MeetingHandler) DriveWebhook(c *gin.Context) {
	channelID := c.GetHeader("X-Goog-Channel-ID")
	userID := c.GetHeader("X-Goog-Channel-Token")
	resourceID := c.GetHeader("X-Goog-Resource-ID")

	if channelID == "" || userID == "" {
		log.Printf("[DriveWebhook] Missing channel ID or token")
		c.Status(http.StatusNoContent)
		return
	}

	log.Printf("[DriveWebhook] recv channel=%s resource=%s user=%s", channelID, resourceID, userID)

	go func() {
		if _, err := h.ingestUsecase.RunForUserID(context.Background(), userID); err != nil {
			log.Printf("[DriveWebhook] Ingestion failed for user %s: %v", userID, err)
		}
	}()

	c.Status(http.StatusNoContent)
}

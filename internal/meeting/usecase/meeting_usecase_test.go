package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "meetingmate-backend/internal/auth/domain"
	"meetingmate-backend/internal/meeting/domain"
	"meetingmate-backend/pkg/gmailscan"
	"meetingmate-backend/pkg/gtasks"
)

func newMeetingFixture(t *testing.T) (MeetingUsecase, *fakeRecordRepo, *fakeTasks, *fakeScanner) {
	t.Helper()
	user := &authdomain.User{ID: "u1", Email: "a@b.c"}
	users := newFakeUserRepo(user)
	records := &fakeRecordRepo{}
	tasks := newFakeTasks(gtasks.TaskList{ID: "default", Title: "My Tasks"})
	scanner := &fakeScanner{}
	return NewMeetingUsecase(users, records, &fakeCreds{}, tasks, scanner), records, tasks, scanner
}

func TestListAndGetSummaries(t *testing.T) {
	uc, records, _, _ := newMeetingFixture(t)
	require.NoError(t, records.Create(&domain.MeetingRecord{
		UserID: "u1", Source: domain.SourceDrive, SourceID: "f1",
		Title: "Weekly Sync", SummaryText: "S",
		Tasks: domain.TaskSlice{{ID: "1", Text: "Do it"}},
	}))

	summaries, err := uc.ListSummaries(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Weekly Sync", summaries[0].Title)
	assert.Equal(t, "drive", summaries[0].Source)

	got, err := uc.GetSummary(context.Background(), "u1", summaries[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Weekly Sync", got.Title)

	missing, err := uc.GetSummary(context.Background(), "u1", "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	otherUser, err := uc.GetSummary(context.Background(), "u2", summaries[0].ID)
	require.NoError(t, err)
	assert.Nil(t, otherUser)
}

func TestListTasksFlattens(t *testing.T) {
	uc, records, _, _ := newMeetingFixture(t)
	require.NoError(t, records.Create(&domain.MeetingRecord{
		UserID: "u1", Source: domain.SourceDrive, SourceID: "f1", Title: "Sync",
		Tasks: domain.TaskSlice{{ID: "1", Text: "One"}, {ID: "2", Text: "Two", Completed: true}},
	}))

	items, err := uc.ListTasks(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, records.records[0].ID+"_1", items[0].ID)
	assert.Equal(t, "Sync", items[0].SummaryTitle)
	assert.True(t, items[1].Completed)
}

func TestSyncRecordWritesBackRemoteLinks(t *testing.T) {
	uc, records, tasks, _ := newMeetingFixture(t)
	require.NoError(t, records.Create(&domain.MeetingRecord{
		UserID: "u1", Source: domain.SourceDrive, SourceID: "f1", Title: "Sync",
		Tasks:     domain.TaskSlice{{ID: "1", Text: "Ship the beta"}},
		CreatedAt: time.Now(),
	}))
	recordID := records.records[0].ID

	result, err := uc.SyncRecord(context.Background(), "u1", recordID)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.TasksSynced)
	assert.Equal(t, "Successfully synced 1 tasks to Google Tasks", result.Message)
	assert.Len(t, tasks.tasksByList["default"], 1)

	stored, _ := records.FindByID("u1", recordID)
	require.NotNil(t, stored.Tasks[0].Remote)
	assert.Equal(t, "default", stored.Tasks[0].Remote.ListID)
}

func TestSyncRecordNoTasks(t *testing.T) {
	uc, records, _, _ := newMeetingFixture(t)
	require.NoError(t, records.Create(&domain.MeetingRecord{
		UserID: "u1", Source: domain.SourceDrive, SourceID: "f1", Title: "Empty",
	}))

	result, err := uc.SyncRecord(context.Background(), "u1", records.records[0].ID)

	require.NoError(t, err)
	assert.Equal(t, "No tasks to sync", result.Message)
	assert.Equal(t, 0, result.TasksSynced)
}

func TestSyncAllAggregates(t *testing.T) {
	uc, records, _, _ := newMeetingFixture(t)
	require.NoError(t, records.Create(&domain.MeetingRecord{
		UserID: "u1", Source: domain.SourceDrive, SourceID: "f1", Title: "A",
		Tasks: domain.TaskSlice{{ID: "1", Text: "Task from meeting A"}},
	}))
	require.NoError(t, records.Create(&domain.MeetingRecord{
		UserID: "u1", Source: domain.SourceDrive, SourceID: "f2", Title: "B",
	}))
	require.NoError(t, records.Create(&domain.MeetingRecord{
		UserID: "u1", Source: domain.SourceDrive, SourceID: "f3", Title: "C",
		Tasks: domain.TaskSlice{{ID: "1", Text: "Task from meeting C"}},
	}))

	result, err := uc.SyncAll(context.Background(), "u1", 0)

	require.NoError(t, err)
	assert.Equal(t, 2, result.SummariesProcessed)
	assert.Equal(t, 2, result.TotalTasksSynced)
}

func TestUpdateTaskStatusLocalAndRemote(t *testing.T) {
	uc, records, tasks, _ := newMeetingFixture(t)
	require.NoError(t, records.Create(&domain.MeetingRecord{
		UserID: "u1", Source: domain.SourceDrive, SourceID: "f1", Title: "Sync",
		Tasks: domain.TaskSlice{{ID: "1", Text: "Ship the beta"}},
	}))
	recordID := records.records[0].ID
	tasks.tasksByList["default"] = []gtasks.Task{{
		ID:     "gt-1",
		Title:  "Ship the beta",
		Notes:  "Sync ID: meeting_" + recordID + "_task_1",
		Status: "needsAction",
	}}

	result, err := uc.UpdateTaskStatus(context.Background(), "u1", recordID, "1", true)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.GoogleTaskUpdated)
	assert.Contains(t, result.Message, "completed in both")

	stored, _ := records.FindByID("u1", recordID)
	assert.True(t, stored.Tasks[0].Completed)
	assert.Equal(t, "completed", tasks.tasksByList["default"][0].Status)
}

func TestUpdateTaskStatusNoRemoteTask(t *testing.T) {
	uc, records, _, _ := newMeetingFixture(t)
	require.NoError(t, records.Create(&domain.MeetingRecord{
		UserID: "u1", Source: domain.SourceDrive, SourceID: "f1", Title: "Sync",
		Tasks: domain.TaskSlice{{ID: "1", Text: "Ship the beta", Completed: true}},
	}))
	recordID := records.records[0].ID

	result, err := uc.UpdateTaskStatus(context.Background(), "u1", recordID, "1", false)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.GoogleTaskUpdated)
	assert.Contains(t, result.Message, "No corresponding Google Task found")

	stored, _ := records.FindByID("u1", recordID)
	assert.False(t, stored.Tasks[0].Completed)
}

func TestUpdateTaskStatusUnknownTask(t *testing.T) {
	uc, records, _, _ := newMeetingFixture(t)
	require.NoError(t, records.Create(&domain.MeetingRecord{
		UserID: "u1", Source: domain.SourceDrive, SourceID: "f1", Title: "Sync",
		Tasks: domain.TaskSlice{{ID: "1", Text: "Only task"}},
	}))

	_, err := uc.UpdateTaskStatus(context.Background(), "u1", records.records[0].ID, "9", true)

	assert.Error(t, err)
}

func TestScanGmailStoresAndDedupes(t *testing.T) {
	uc, records, _, scanner := newMeetingFixture(t)
	scanner.summaries = []gmailscan.EmailSummary{
		{
			EmailID: "msg-1",
			Title:   "Weekly Sync",
			Summary: "Talked about the launch.",
			Tasks:   []gmailscan.ParsedTask{{ID: "1", Text: "Ship the beta"}},
		},
		{EmailID: "msg-2", Title: "Standup", Summary: "Short sync."},
	}
	// msg-2 was ingested on a previous scan.
	require.NoError(t, records.Create(&domain.MeetingRecord{
		UserID: "u1", Source: domain.SourceGmail, SourceID: "msg-2", Title: "Standup",
	}))

	result, err := uc.ScanGmail(context.Background(), "u1", 7)

	require.NoError(t, err)
	assert.Equal(t, 2, result.EmailsScanned)
	assert.Equal(t, 1, result.SummariesStored)

	stored, _ := records.FindByUserAndSource("u1", domain.SourceGmail, "msg-1")
	require.NotNil(t, stored)
	assert.Equal(t, "Weekly Sync", stored.Title)
	require.Len(t, stored.Tasks, 1)
	assert.Equal(t, "Ship the beta", stored.Tasks[0].Text)
}

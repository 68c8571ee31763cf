package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	authdomain "meetingmate-backend/internal/auth/domain"
	"meetingmate-backend/internal/meeting/domain"
	"meetingmate-backend/pkg/ai"
	"meetingmate-backend/pkg/drive"
	"meetingmate-backend/pkg/gmailscan"
	"meetingmate-backend/pkg/googleauth"
	"meetingmate-backend/pkg/gtasks"
)

type fakeUserRepo struct {
	users map[string]*authdomain.User
}

func newFakeUserRepo(users ...*authdomain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*authdomain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(user *authdomain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*authdomain.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll() ([]*authdomain.User, error) {
	var all []*authdomain.User
	for _, u := range r.users {
		all = append(all, u)
	}
	return all, nil
}

func (r *fakeUserRepo) Update(user *authdomain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePageToken(userID, token string) error {
	if u, ok := r.users[userID]; ok {
		u.DrivePageToken = token
	}
	return nil
}

func (r *fakeUserRepo) UpdateMeetFolder(userID, folderID string) error {
	if u, ok := r.users[userID]; ok {
		u.MeetFolderID = folderID
	}
	return nil
}

type fakeRecordRepo struct {
	records []*domain.MeetingRecord
	nextID  int
}

func (r *fakeRecordRepo) Create(record *domain.MeetingRecord) error {
	if record.ID == "" {
		r.nextID++
		record.ID = "rec-" + strconv.Itoa(r.nextID)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	stored := *record
	r.records = append(r.records, &stored)
	return nil
}

func (r *fakeRecordRepo) FindByID(userID, recordID string) (*domain.MeetingRecord, error) {
	for _, rec := range r.records {
		if rec.ID == recordID && rec.UserID == userID {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRecordRepo) FindByUserAndSource(userID string, source domain.SourceKind, sourceID string) (*domain.MeetingRecord, error) {
	for _, rec := range r.records {
		if rec.UserID == userID && rec.Source == source && rec.SourceID == sourceID {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRecordRepo) FindByUserID(userID string, limit int) ([]domain.MeetingRecord, error) {
	var out []domain.MeetingRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) UpdateTasks(recordID string, tasks domain.TaskSlice) error {
	for _, rec := range r.records {
		if rec.ID == recordID {
			rec.Tasks = tasks
			return nil
		}
	}
	return fmt.Errorf("record not found: %s", recordID)
}

type fakeCreds struct {
	err error
}

func (c *fakeCreds) Resolve(ctx context.Context, user *authdomain.User) (*googleauth.Credential, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &googleauth.Credential{}, nil
}

// fakeDrive serves scripted change pages and file contents.
type fakeDrive struct {
	startToken    string
	startTokenErr error
	changePages   map[string]*drive.ChangePage
	changeErr     map[string]error
	folderPages   map[string]*drive.FilePage
	contents      map[string][2]string // fileID -> {title, text}
	contentErr    map[string]error
	meetFolderID  string
}

func (d *fakeDrive) StartPageToken(ctx context.Context, cred *googleauth.Credential) (string, error) {
	return d.startToken, d.startTokenErr
}

func (d *fakeDrive) ListChangesPage(ctx context.Context, cred *googleauth.Credential, pageToken string) (*drive.ChangePage, error) {
	if err, ok := d.changeErr[pageToken]; ok {
		return nil, err
	}
	if page, ok := d.changePages[pageToken]; ok {
		return page, nil
	}
	return &drive.ChangePage{NewStartPageToken: d.startToken}, nil
}

func (d *fakeDrive) ListFolderPage(ctx context.Context, cred *googleauth.Credential, folderID, pageToken string) (*drive.FilePage, error) {
	if page, ok := d.folderPages[pageToken]; ok {
		return page, nil
	}
	return &drive.FilePage{}, nil
}

func (d *fakeDrive) FetchContent(ctx context.Context, cred *googleauth.Credential, fileID string) (string, string, error) {
	if err, ok := d.contentErr[fileID]; ok {
		return "", "", err
	}
	if content, ok := d.contents[fileID]; ok {
		return content[0], content[1], nil
	}
	return "", "", fmt.Errorf("no content for %s", fileID)
}

func (d *fakeDrive) FindMeetFolder(ctx context.Context, cred *googleauth.Credential) (string, error) {
	return d.meetFolderID, nil
}

// fakeTasks keeps task lists in memory.
type fakeTasks struct {
	lists         []gtasks.TaskList
	tasksByList   map[string][]gtasks.Task
	createListErr error
	createTaskErr map[string]error // by task title
	nextID        int
}

func newFakeTasks(lists ...gtasks.TaskList) *fakeTasks {
	return &fakeTasks{
		lists:         lists,
		tasksByList:   map[string][]gtasks.Task{},
		createTaskErr: map[string]error{},
	}
}

func (t *fakeTasks) ListTaskLists(ctx context.Context, cred *googleauth.Credential) ([]gtasks.TaskList, error) {
	return t.lists, nil
}

func (t *fakeTasks) CreateTaskList(ctx context.Context, cred *googleauth.Credential, title string) (*gtasks.TaskList, error) {
	if t.createListErr != nil {
		return nil, t.createListErr
	}
	t.nextID++
	list := gtasks.TaskList{ID: "list-" + strconv.Itoa(t.nextID), Title: title}
	t.lists = append(t.lists, list)
	return &list, nil
}

func (t *fakeTasks) ListTasks(ctx context.Context, cred *googleauth.Credential, listID string) ([]gtasks.Task, error) {
	return t.tasksByList[listID], nil
}

func (t *fakeTasks) CreateTask(ctx context.Context, cred *googleauth.Credential, listID string, task gtasks.Task) (*gtasks.Task, error) {
	if err, ok := t.createTaskErr[task.Title]; ok {
		return nil, err
	}
	t.nextID++
	task.ID = "task-" + strconv.Itoa(t.nextID)
	if task.Status == "" {
		task.Status = "needsAction"
	}
	t.tasksByList[listID] = append(t.tasksByList[listID], task)
	return &task, nil
}

func (t *fakeTasks) UpdateTaskStatus(ctx context.Context, cred *googleauth.Credential, listID, taskID string, completed bool) error {
	tasks := t.tasksByList[listID]
	for i := range tasks {
		if tasks[i].ID == taskID {
			if completed {
				tasks[i].Status = "completed"
			} else {
				tasks[i].Status = "needsAction"
			}
			return nil
		}
	}
	return fmt.Errorf("task not found: %s", taskID)
}

type fakeCalendar struct {
	created []string // descriptions
	err     error
}

func (c *fakeCalendar) CreateDeadlineEvent(ctx context.Context, cred *googleauth.Credential, description, meetingContext string, due time.Time) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.created = append(c.created, description)
	return "event-" + strconv.Itoa(len(c.created)), nil
}

type fakeScanner struct {
	summaries []gmailscan.EmailSummary
	err       error
}

func (s *fakeScanner) ScanForSummaries(ctx context.Context, cred *googleauth.Credential, daysBack int) ([]gmailscan.EmailSummary, error) {
	return s.summaries, s.err
}

type fakeSummarizer struct {
	result ai.SummaryResult
}

func (s *fakeSummarizer) Summarize(ctx context.Context, transcript string) ai.SummaryResult {
	return s.result
}

type fakeExtractor struct {
	tasks []ai.TaskExtraction
}

func (e *fakeExtractor) Extract(ctx context.Context, transcript string) []ai.TaskExtraction {
	return e.tasks
}

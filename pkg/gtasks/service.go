package gtasks

import (
	"context"
	"fmt"

	"meetingmate-backend/pkg/googleauth"

	tasksapi "google.golang.org/api/tasks/v1"
	"google.golang.org/api/option"
)

// TaskList is a Google Tasks list.
type TaskList struct {
	ID    string
	Title string
}

// Task mirrors the Google Tasks fields the sync engine reads and writes.
type Task struct {
	ID     string
	Title  string
	Notes  string
	Status string // "needsAction" or "completed"
	Due    string // RFC3339, empty when unset
}

// Service wraps the Google Tasks v1 API.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) tasksService(ctx context.Context, cred *googleauth.Credential) (*tasksapi.Service, error) {
	srv, err := tasksapi.NewService(ctx, option.WithHTTPClient(cred.HTTPClient()))
	if err != nil {
		return nil, fmt.Errorf("unable to create Tasks service: %v", err)
	}
	return srv, nil
}

// ListTaskLists returns all of the user's task lists.
func (s *Service) ListTaskLists(ctx context.Context, cred *googleauth.Credential) ([]TaskList, error) {
	srv, err := s.tasksService(ctx, cred)
	if err != nil {
		return nil, err
	}

	var lists []TaskList
	pageToken := ""
	for {
		call := srv.Tasklists.List().MaxResults(100).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list task lists: %v", err)
		}
		for _, item := range resp.Items {
			lists = append(lists, TaskList{ID: item.Id, Title: item.Title})
		}
		if resp.NextPageToken == "" {
			return lists, nil
		}
		pageToken = resp.NextPageToken
	}
}

// CreateTaskList creates a new task list with the given title.
func (s *Service) CreateTaskList(ctx context.Context, cred *googleauth.Credential, title string) (*TaskList, error) {
	srv, err := s.tasksService(ctx, cred)
	if err != nil {
		return nil, err
	}

	created, err := srv.Tasklists.Insert(&tasksapi.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create task list %q: %v", title, err)
	}
	return &TaskList{ID: created.Id, Title: created.Title}, nil
}

// ListTasks returns all tasks in a list, including completed and hidden ones.
func (s *Service) ListTasks(ctx context.Context, cred *googleauth.Credential, listID string) ([]Task, error) {
	srv, err := s.tasksService(ctx, cred)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	pageToken := ""
	for {
		call := srv.Tasks.List(listID).
			ShowCompleted(true).
			ShowHidden(true).
			MaxResults(100).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list tasks in %s: %v", listID, err)
		}
		for _, item := range resp.Items {
			tasks = append(tasks, Task{
				ID:     item.Id,
				Title:  item.Title,
				Notes:  item.Notes,
				Status: item.Status,
				Due:    item.Due,
			})
		}
		if resp.NextPageToken == "" {
			return tasks, nil
		}
		pageToken = resp.NextPageToken
	}
}

// CreateTask inserts a task into a list.
func (s *Service) CreateTask(ctx context.Context, cred *googleauth.Credential, listID string, task Task) (*Task, error) {
	srv, err := s.tasksService(ctx, cred)
	if err != nil {
		return nil, err
	}

	created, err := srv.Tasks.Insert(listID, &tasksapi.Task{
		Title:  task.Title,
		Notes:  task.Notes,
		Status: task.Status,
		Due:    task.Due,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create task: %v", err)
	}
	return &Task{
		ID:     created.Id,
		Title:  created.Title,
		Notes:  created.Notes,
		Status: created.Status,
		Due:    created.Due,
	}, nil
}

// GetTask fetches a single task.
func (s *Service) GetTask(ctx context.Context, cred *googleauth.Credential, listID, taskID string) (*Task, error) {
	srv, err := s.tasksService(ctx, cred)
	if err != nil {
		return nil, err
	}

	item, err := srv.Tasks.Get(listID, taskID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to get task %s: %v", taskID, err)
	}
	return &Task{
		ID:     item.Id,
		Title:  item.Title,
		Notes:  item.Notes,
		Status: item.Status,
		Due:    item.Due,
	}, nil
}

// UpdateTaskStatus flips a task between needsAction and completed.
func (s *Service) UpdateTaskStatus(ctx context.Context, cred *googleauth.Credential, listID, taskID string, completed bool) error {
	srv, err := s.tasksService(ctx, cred)
	if err != nil {
		return err
	}

	item, err := srv.Tasks.Get(listID, taskID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to get task %s: %v", taskID, err)
	}

	if completed {
		item.Status = "completed"
	} else {
		item.Status = "needsAction"
		item.Completed = nil
		item.ForceSendFields = append(item.ForceSendFields, "Completed")
	}

	if _, err := srv.Tasks.Update(listID, taskID, item).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to update task %s: %v", taskID, err)
	}
	return nil
}

package repository

import authdomain "meetingmate-backend/internal/auth/domain"

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *authdomain.User) error

	// FindByID finds a user by ID, returning (nil, nil) when absent
	FindByID(id string) (*authdomain.User, error)

	// FindByEmail finds a user by email, returning (nil, nil) when absent
	FindByEmail(email string) (*authdomain.User, error)

	// FindAll returns every user (used by the background sync scheduler)
	FindAll() ([]*authdomain.User, error)

	// Update updates an existing user
	Update(user *authdomain.User) error

	// UpdatePageToken persists the Drive change-feed cursor for a user
	UpdatePageToken(userID, token string) error

	// UpdateMeetFolder persists the discovered Meet Recordings folder ID
	UpdateMeetFolder(userID, folderID string) error
}

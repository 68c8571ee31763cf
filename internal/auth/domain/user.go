package domain

import "time"

type User struct {
	ID        string `json:"id" gorm:"primaryKey"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Name      string `json:"name"`
	Picture   string `json:"picture,omitempty"`
	// Encrypted Google refresh token, never exposed over the API
	RefreshTokenEnc string `json:"-"`
	// Drive folder holding Meet transcripts; empty until discovered
	MeetFolderID string `json:"meet_folder_id,omitempty" gorm:"index"`
	// Opaque Drive change-feed cursor; empty means this user was never scanned
	DrivePageToken string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

package dto

import authdomain "meetingmate-backend/internal/auth/domain"

// TokenResponse is returned after a successful OAuth callback exchange.
type TokenResponse struct {
	AccessToken string           `json:"access_token"`
	User        *authdomain.User `json:"user"`
}

// MeResponse is the authenticated-user payload for GET /auth/me.
type MeResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture,omitempty"`
	MeetFolderID string `json:"meet_folder_id,omitempty"`
	HasSynced    bool   `json:"has_synced"`
}

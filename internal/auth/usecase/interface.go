package usecase

import (
	"context"

	authdomain "meetingmate-backend/internal/auth/domain"
	authdto "meetingmate-backend/internal/auth/dto"
)

// PostLoginHook runs after a successful OAuth callback, off the request
// path. Used to kick the first Drive ingestion for a fresh login.
type PostLoginHook func(userID string)

// AuthUsecase handles the Google OAuth login flow and app JWT sessions.
type AuthUsecase interface {
	// AuthURL returns the consent screen URL and the CSRF state to store
	// in a cookie.
	AuthURL() (url string, state string)

	// HandleCallback exchanges the authorization code, upserts the user
	// with an encrypted refresh token, and returns the frontend redirect
	// URL carrying the app JWT.
	HandleCallback(ctx context.Context, cookieState, state, code string) (string, error)

	// ValidateToken parses an app JWT and loads its user.
	ValidateToken(token string) (*authdomain.User, error)

	// Me returns the profile for an authenticated user.
	Me(userID string) (*authdto.MeResponse, error)

	// SetPostLoginHook registers the hook invoked after each login.
	SetPostLoginHook(hook PostLoginHook)
}

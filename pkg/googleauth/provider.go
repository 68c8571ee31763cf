package googleauth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	authdomain "meetingmate-backend/internal/auth/domain"
	"meetingmate-backend/pkg/crypto"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes is the full set the backend needs across Drive, Tasks, Calendar
// and Gmail. The consent screen requests the union so one refresh token
// covers every service.
var Scopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/drive.readonly",
	"https://www.googleapis.com/auth/tasks",
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/gmail.readonly",
}

// CredentialError means the stored refresh token is unusable (corrupt
// ciphertext or consent revoked). Callers must send the user back through
// the OAuth flow instead of retrying.
type CredentialError struct {
	Reason string
	Err    error
}

func (e *CredentialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("credential error: %s: %v", e.Reason, e.Err)
	}
	return "credential error: " + e.Reason
}

func (e *CredentialError) Unwrap() error { return e.Err }

// Credential is a resolved, ready-to-use Google API credential for one user.
type Credential struct {
	Token *oauth2.Token

	client *http.Client
}

// HTTPClient returns an authorized client that transparently refreshes.
func (c *Credential) HTTPClient() *http.Client { return c.client }

// Provider turns a user's stored refresh token into short-lived access
// credentials for the Google APIs.
type Provider struct {
	clientID     string
	clientSecret string
	cipher       *crypto.Cipher
}

func NewProvider(clientID, clientSecret string, cipher *crypto.Cipher) *Provider {
	return &Provider{
		clientID:     clientID,
		clientSecret: clientSecret,
		cipher:       cipher,
	}
}

// Resolve decrypts the user's refresh token and eagerly exchanges it for an
// access token, so callers fail fast on revoked consent.
func (p *Provider) Resolve(ctx context.Context, user *authdomain.User) (*Credential, error) {
	if user.RefreshTokenEnc == "" {
		return nil, &CredentialError{Reason: "no refresh token stored for " + user.Email}
	}

	refreshToken, err := p.cipher.Decrypt(user.RefreshTokenEnc)
	if err != nil {
		return nil, &CredentialError{Reason: "failed to decrypt refresh token", Err: err}
	}

	config := p.OAuthConfig("")

	token := &oauth2.Token{
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now(), // force an immediate refresh
	}

	tokenSource := config.TokenSource(ctx, token)

	// Eager exchange: a revoked or expired grant surfaces here, not on the
	// first API call deep inside a sync run.
	fresh, err := tokenSource.Token()
	if err != nil {
		return nil, &CredentialError{Reason: "token exchange rejected", Err: err}
	}

	return &Credential{
		Token:  fresh,
		client: oauth2.NewClient(ctx, tokenSource),
	}, nil
}

// OAuthConfig builds the oauth2 config used by both the login flow and
// credential resolution.
func (p *Provider) OAuthConfig(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
		Endpoint:     google.Endpoint,
	}
}

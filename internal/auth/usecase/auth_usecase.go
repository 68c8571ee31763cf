package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	authdomain "meetingmate-backend/internal/auth/domain"
	authdto "meetingmate-backend/internal/auth/dto"
	"meetingmate-backend/internal/auth/repository"
	"meetingmate-backend/pkg/config"
	"meetingmate-backend/pkg/crypto"
	"meetingmate-backend/pkg/googleauth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

type authUsecase struct {
	userRepo repository.UserRepository
	provider *googleauth.Provider
	cipher   *crypto.Cipher
	config   *config.Config
	onLogin  PostLoginHook
}

func NewAuthUsecase(userRepo repository.UserRepository, provider *googleauth.Provider, cipher *crypto.Cipher, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		provider: provider,
		cipher:   cipher,
		config:   cfg,
	}
}

func (u *authUsecase) SetPostLoginHook(hook PostLoginHook) {
	u.onLogin = hook
}

func (u *authUsecase) oauthConfig() *oauth2.Config {
	return u.provider.OAuthConfig(u.config.GoogleRedirectURI)
}

func (u *authUsecase) AuthURL() (string, string) {
	state := uuid.New().String()
	url := u.oauthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return url, state
}

// GoogleTokenInfo is the response from Google's tokeninfo endpoint.
type GoogleTokenInfo struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	EmailVerified string `json:"email_verified"` // Google returns this as string "true" or "false"
	Sub           string `json:"sub"`
}

func (u *authUsecase) HandleCallback(ctx context.Context, cookieState, state, code string) (string, error) {
	if state == "" || cookieState != state {
		return "", errors.New("invalid state parameter")
	}
	if code == "" {
		return "", errors.New("missing authorization code")
	}

	token, err := u.oauthConfig().Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("unable to exchange authorization code: %v", err)
	}

	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		return "", errors.New("no id_token in token response")
	}

	info, err := verifyIDToken(idToken)
	if err != nil {
		return "", err
	}

	user, err := u.upsertUser(info, token.RefreshToken)
	if err != nil {
		return "", err
	}

	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return "", err
	}

	if u.onLogin != nil {
		go u.onLogin(user.ID)
	}

	return fmt.Sprintf("%s/login/success?token=%s", u.config.FrontendURL, accessToken), nil
}

func verifyIDToken(idToken string) (*GoogleTokenInfo, error) {
	resp, err := http.Get("https://oauth2.googleapis.com/tokeninfo?id_token=" + idToken)
	if err != nil {
		return nil, errors.New("failed to verify Google token: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to verify Google token: status %d, body: %s", resp.StatusCode, string(body))
	}

	var info GoogleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.New("failed to decode Google token info: " + err.Error())
	}

	if info.EmailVerified != "true" {
		return nil, errors.New("google email is not verified")
	}
	return &info, nil
}

// upsertUser creates or refreshes the user row. A new refresh token always
// replaces the stored one; Google only returns it on consenting logins, so
// an empty token leaves the existing grant untouched.
func (u *authUsecase) upsertUser(info *GoogleTokenInfo, refreshToken string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByEmail(info.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &authdomain.User{
			ID:      uuid.New().String(),
			Email:   info.Email,
			Name:    info.Name,
			Picture: info.Picture,
		}
		if refreshToken != "" {
			enc, err := u.cipher.Encrypt(refreshToken)
			if err != nil {
				return nil, fmt.Errorf("unable to encrypt refresh token: %v", err)
			}
			user.RefreshTokenEnc = enc
		}
		if err := u.userRepo.Create(user); err != nil {
			return nil, err
		}
		log.Printf("[Auth] Created user %s", user.Email)
		return user, nil
	}

	if info.Name != "" {
		user.Name = info.Name
	}
	if info.Picture != "" {
		user.Picture = info.Picture
	}
	if refreshToken != "" {
		enc, err := u.cipher.Encrypt(refreshToken)
		if err != nil {
			return nil, fmt.Errorf("unable to encrypt refresh token: %v", err)
		}
		user.RefreshTokenEnc = enc
	}
	if err := u.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.SecretKey))
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.SecretKey), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (u *authUsecase) Me(userID string) (*authdto.MeResponse, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return &authdto.MeResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Picture:      user.Picture,
		MeetFolderID: user.MeetFolderID,
		HasSynced:    user.DrivePageToken != "",
	}, nil
}

package delivery

import (
	"net/http"

	"meetingmate-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

const stateCookie = "oauth_state"

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// GoogleLogin redirects to the Google consent screen, storing the CSRF
// state in a short-lived cookie.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	url, state := h.authUsecase.AuthURL()
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback exchanges the authorization code and redirects to the
// frontend with the app JWT.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	cookieState, _ := c.Cookie(stateCookie)

	redirectURL, err := h.authUsecase.HandleCallback(
		c.Request.Context(),
		cookieState,
		c.Query("state"),
		c.Query("code"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.SetCookie(stateCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, redirectURL)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	me, err := h.authUsecase.Me(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, me)
}

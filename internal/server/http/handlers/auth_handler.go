package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mfcarvalho/painel-pedidos/internal/domain/errors"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
	"github.com/mfcarvalho/painel-pedidos/internal/server/http/dto"
	"github.com/mfcarvalho/painel-pedidos/internal/server/http/middleware"
)

// AuthHandler processes registration, login and session introspection.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, sessionResponse(user))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, sessionResponse(user))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.Status(http.StatusNoContent)
}

// Session handles GET /api/auth/session. Any failure resolving the account —
// gone user or storage error alike — means there is no session to report: the
// cookie is cleared and the caller lands on the login flow.
func (h *AuthHandler) Session(c *gin.Context) {
	user, err := h.facade.Session(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		middleware.ClearAuthCookie(c)
		c.Status(http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(user))
}

func sessionResponse(user *model.User) dto.SessionResponse {
	return dto.SessionResponse{UserID: user.ID, Login: user.Login, Admin: user.Admin}
}

package handlers

import (
	"errors"
	"net/http"

	"rumor-detection/auth"
	"rumor-detection/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=100,username"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "New account"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	case err != nil:
		h.internalError(c, "Failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Exchange credentials for a token pair
// @Description The username form field carries the account email.
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} auth.TokenPair
// @Failure 401 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		abortBind(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	case errors.Is(err, services.ErrInactiveUser):
		c.JSON(http.StatusForbidden, gin.H{"error": "Inactive user"})
		return
	case err != nil:
		h.internalError(c, "Login failed", err)
		return
	}

	h.issueTokens(c, user.ID)
}

// Refresh godoc
// @Summary Trade a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body refreshRequest false "Refresh token"
// @Param refresh_token query string false "Refresh token"
// @Success 200 {object} auth.TokenPair
// @Failure 401 {object} map[string]any
// @Router /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBind(c, err)
			return
		}
	}
	if req.RefreshToken == "" {
		req.RefreshToken = c.Query("refresh_token")
	}
	if req.RefreshToken == "" {
		validationFailed(c, map[string]string{"refresh_token": "is required"})
		return
	}

	userID, err := h.tokens.Parse(req.RefreshToken, auth.RefreshToken)
	switch {
	case errors.Is(err, auth.ErrWrongTokenType):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token type"})
		return
	case err != nil:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token payload"})
		return
	case err != nil:
		h.internalError(c, "Failed to load user", err)
		return
	case !user.IsActive:
		c.JSON(http.StatusForbidden, gin.H{"error": "Inactive user"})
		return
	}

	h.issueTokens(c, user.ID)
}

// Logout godoc
// @Summary Log out
// @Description Tokens are stateless; the client discards them.
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
// @Security Bearer
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *Handler) issueTokens(c *gin.Context, userID uuid.UUID) {
	pair, err := h.tokens.IssuePair(userID)
	if err != nil {
		h.internalError(c, "Failed to issue token", err)
		return
	}
	h.log.Debug("issued token pair", "user_id", userID)
	c.JSON(http.StatusOK, pair)
}

// internalError logs err and answers with a generic 500.
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.log.Error(msg, "path", c.FullPath(), "error", err)
	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

package handlers

import (
	"errors"
	"net/http"

	"rumor-detection/middleware"
	"rumor-detection/services"

	"github.com/gin-gonic/gin"
)

type updateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username" binding:"omitempty,min=3,max=100,username"`
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=100"`
}

// GetMe godoc
// @Summary Current user
// @Tags Users
// @Produce json
// @Success 200 {object} models.User
// @Router /users/me [get]
// @Security Bearer
func (h *Handler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateMe godoc
// @Summary Update email or username
// @Tags Users
// @Accept json
// @Produce json
// @Param body body updateUserRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]any
// @Router /users/me [put]
// @Security Bearer
func (h *Handler) UpdateMe(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), middleware.CurrentUser(c), services.UpdateUserInput{
		Email:    req.Email,
		Username: req.Username,
	})
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	case err != nil:
		h.internalError(c, "Failed to update user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdatePassword godoc
// @Summary Change password
// @Tags Users
// @Accept json
// @Produce json
// @Param body body passwordRequest true "Current and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]any
// @Router /users/me/password [put]
// @Security Bearer
func (h *Handler) UpdatePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	err := h.users.UpdatePassword(c.Request.Context(), middleware.CurrentUser(c), req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrIncorrectPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect current password"})
		return
	case err != nil:
		h.internalError(c, "Failed to update password", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

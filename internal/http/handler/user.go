package handler

import (
	"net/http"
	"time"

	"order-service/internal/auth"
	"order-service/internal/domain/user"
	"order-service/pkg/password"
	"order-service/pkg/validator"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userRepo UserRepository
}

func NewUserHandler(userRepo UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

type UserResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *UserHandler) Me(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	u, err := h.userRepo.GetByID(c.Request().Context(), userID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, UserResponse{
		UserID:    u.ID.String(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req ChangePasswordRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := validator.Password(req.NewPassword); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	u, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	if !password.Verify(req.CurrentPassword, u.PasswordHash) {
		return respondError(c, http.StatusUnauthorized, msgCurrentPasswordFail)
	}

	passwordHash, err := password.Hash(req.NewPassword)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	if err := h.userRepo.Update(ctx, userID, user.UpdateUserInput{
		PasswordHash: &passwordHash,
	}); err != nil {
		return RespondWithMappedError(c, err)
	}

	return respondMessage(c, http.StatusOK, msgPasswordChanged)
}

func (h *UserHandler) DeleteAccount(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	if err := h.userRepo.Delete(c.Request().Context(), userID); err != nil {
		return RespondWithMappedError(c, err)
	}

	return respondMessage(c, http.StatusOK, msgAccountDeleted)
}

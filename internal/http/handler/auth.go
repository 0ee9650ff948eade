package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"order-service/internal/domain/user"
	apperrors "order-service/pkg/errors"
	"order-service/pkg/password"
	"order-service/pkg/validator"

	"github.com/labstack/echo/v4"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing on failed lookups.
// The actual plaintext is irrelevant — this just ensures constant-time response.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

const resetMailTimeout = 10 * time.Second

type AuthHandler struct {
	userRepo   UserRepository
	jwtService TokenGenerator
	resetStore ResetTokenStore
	notifier   Notifier
}

func NewAuthHandler(userRepo UserRepository, jwtService TokenGenerator, resetStore ResetTokenStore, notifier Notifier) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		jwtService: jwtService,
		resetStore: resetStore,
		notifier:   notifier,
	}
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Email(req.Email); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	if err := validator.Password(req.Password); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	u, err := h.userRepo.Create(c.Request().Context(), user.CreateUserInput{
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrEmailExists) {
			return respondError(c, http.StatusConflict, msgEmailAlreadyExists)
		}
		return respondError(c, http.StatusInternalServerError, msgCreateAccountFail)
	}

	token, err := h.jwtService.Generate(u.ID, u.Email)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	return c.JSON(http.StatusCreated, SignupResponse{
		UserID: u.ID.String(),
		Email:  u.Email,
		Token:  token,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		password.Verify("", dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	u, err := h.userRepo.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		// Run bcrypt against a dummy hash to prevent timing oracle.
		// Without this, "user not found" returns in ~1ms while
		// "wrong password" takes ~200ms, leaking email existence.
		password.Verify(req.Password, dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	token, err := h.jwtService.Generate(u.ID, u.Email)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
	})
}

// RequestPasswordReset always answers 202 so the response does not reveal
// whether an account exists. Token issuance and mail delivery happen in the
// background.
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req PasswordResetRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Email(req.Email); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	logger := c.Logger()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), resetMailTimeout)
		defer cancel()

		u, err := h.userRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return
		}

		token, err := h.resetStore.Issue(ctx, u.ID)
		if err != nil {
			logger.Errorf("failed to issue reset token: %v", err)
			return
		}

		if err := h.notifier.SendPasswordReset(u.Email, token); err != nil {
			logger.Errorf("failed to send reset email: %v", err)
		}
	}()

	return respondMessage(c, http.StatusAccepted, msgResetRequested)
}

func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var req PasswordResetConfirm
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Token == "" {
		return respondError(c, http.StatusBadRequest, msgResetTokenInvalid)
	}

	if err := validator.Password(req.NewPassword); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	userID, err := h.resetStore.Consume(ctx, req.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrExpired) {
			return respondError(c, http.StatusBadRequest, msgResetTokenInvalid)
		}
		return RespondWithMappedError(c, err)
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

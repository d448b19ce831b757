package handlers

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/middleware"
	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/internal/token"
	"taskboard/pkg/apperr"
	"taskboard/pkg/crypto"
	"taskboard/pkg/logger"
	"taskboard/pkg/response"
	"taskboard/pkg/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// normalize lowercases and trims, matching the store's casing rules for
// emails, full names and task names.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func setTokenCookie(c *fiber.Ctx, name, value string, expiry time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(expiry),
		HTTPOnly: true,
		Secure:   config.App.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func clearTokenCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   config.App.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// issueTokenPair mints a fresh access/refresh pair and persists the refresh
// token (encrypted at rest) as the user's single active one.
func issueTokenPair(user *models.User) (accessToken, refreshToken string, err error) {
	accessToken, err = token.IssueAccessToken(
		user.ID.String(), user.Email, user.FullName,
		config.App.AccessTokenSecret, config.App.AccessTokenExpiry)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = token.IssueRefreshToken(
		user.ID.String(), config.App.RefreshTokenSecret, config.App.RefreshTokenExpiry)
	if err != nil {
		return "", "", err
	}

	sealed, err := crypto.Encrypt(refreshToken, config.App.TokenEncryptionKey)
	if err != nil {
		return "", "", err
	}
	err = repository.UpdateRefreshToken(config.DB, user.ID,
		sql.NullString{String: sealed, Valid: true})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		FullName string `json:"fullName" validate:"required"`
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.New(fiber.StatusBadRequest, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return apperr.New(fiber.StatusBadRequest, "All fields are required", err.Error())
	}

	email := normalize(req.Email)
	if err := validate.Email(email); err != nil {
		return apperr.New(fiber.StatusBadRequest, "Invalid email format")
	}
	if err := validate.Password(req.Password); err != nil {
		return apperr.New(fiber.StatusBadRequest, err.Error())
	}

	if _, err := repository.FindUserByEmail(config.DB, email); err == nil {
		return apperr.New(fiber.StatusConflict, "User with this email already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return err
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		FullName: normalize(req.FullName),
		Password: string(hashedPassword),
	}
	if err := repository.CreateUser(config.DB, user); err != nil {
		// Concurrent registration can slip past the lookup above; the unique
		// index is the real guarantee.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperr.New(fiber.StatusConflict, "User with this email already exists")
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return err
	}

	logger.AuditLogger.Info("User registered", zap.String("user_id", user.ID.String()))
	return response.Success(c, fiber.StatusCreated, user, "User registered successfully")
}

func Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.New(fiber.StatusBadRequest, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return apperr.New(fiber.StatusBadRequest, "Email and password are required", err.Error())
	}

	email := normalize(req.Email)
	if err := validate.Email(email); err != nil {
		return apperr.New(fiber.StatusBadRequest, "Invalid email format")
	}

	user, err := repository.FindUserByEmail(config.DB, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(fiber.StatusBadRequest, "The user does not exist, please register first")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.SecurityLogger.Warn("Invalid password", zap.String("email", email))
		return apperr.New(fiber.StatusUnauthorized, "Incorrect password! Please try again")
	}

	accessToken, refreshToken, err := issueTokenPair(user)
	if err != nil {
		logger.ErrorLogger.Error("Error issuing tokens", zap.Error(err))
		return err
	}

	setTokenCookie(c, "accessToken", accessToken, config.App.AccessTokenExpiry)
	setTokenCookie(c, "refreshToken", refreshToken, config.App.RefreshTokenExpiry)

	logger.AuditLogger.Info("Login success", zap.String("user_id", user.ID.String()))
	return response.Success(c, fiber.StatusOK, user, "Login successful")
}

func Logout(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.New(fiber.StatusUnauthorized, "User not authenticated")
	}

	if err := repository.UpdateRefreshToken(config.DB, user.ID, sql.NullString{}); err != nil {
		return err
	}

	clearTokenCookie(c, "accessToken")
	clearTokenCookie(c, "refreshToken")

	logger.AuditLogger.Info("User logged out", zap.String("user_id", user.ID.String()))
	return response.Success(c, fiber.StatusOK, fiber.Map{}, "User logged out successfully")
}

func RefreshAccessToken(c *fiber.Ctx) error {
	presented := c.Cookies("refreshToken")
	if presented == "" {
		return apperr.New(fiber.StatusBadRequest, "Refresh token missing")
	}

	claims, err := token.Verify(presented, config.App.RefreshTokenSecret)
	if err != nil {
		if errors.Is(err, token.ErrExpiredToken) {
			return apperr.New(fiber.StatusUnauthorized, "Refresh token expired")
		}
		return apperr.New(fiber.StatusUnauthorized, "Invalid refresh token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return apperr.New(fiber.StatusUnauthorized, "Invalid refresh token")
	}

	user, err := repository.FindUserByID(config.DB, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	// Only the most recently issued refresh token is accepted; a superseded
	// or cleared one is rejected even while its signature is still valid.
	if !user.RefreshToken.Valid {
		return apperr.New(fiber.StatusForbidden, "Refresh token mismatch")
	}
	stored, err := crypto.Decrypt(user.RefreshToken.String, config.App.TokenEncryptionKey)
	if err != nil || stored != presented {
		logger.SecurityLogger.Warn("Refresh token mismatch", zap.String("user_id", user.ID.String()))
		return apperr.New(fiber.StatusForbidden, "Refresh token mismatch")
	}

	accessToken, refreshToken, err := issueTokenPair(user)
	if err != nil {
		logger.ErrorLogger.Error("Error issuing tokens", zap.Error(err))
		return err
	}

	setTokenCookie(c, "accessToken", accessToken, config.App.AccessTokenExpiry)
	setTokenCookie(c, "refreshToken", refreshToken, config.App.RefreshTokenExpiry)

	logger.AuditLogger.Info("Token refreshed", zap.String("user_id", user.ID.String()))
	return response.Success(c, fiber.StatusOK, fiber.Map{}, "Token refreshed")
}

func GetCurrentUser(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.New(fiber.StatusUnauthorized, "User not authenticated")
	}
	return response.Success(c, fiber.StatusOK, user, "User fetched successfully")
}

func ChangeCurrentPassword(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.New(fiber.StatusUnauthorized, "User not authenticated")
	}

	type ChangePasswordRequest struct {
		OldPassword        string `json:"oldPassword" validate:"required"`
		NewPassword        string `json:"newPassword" validate:"required"`
		ConfirmNewPassword string `json:"confirmNewPassword" validate:"required"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.New(fiber.StatusBadRequest, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return apperr.New(fiber.StatusBadRequest, "All fields are required", err.Error())
	}

	if err := validate.Password(req.NewPassword); err != nil {
		return apperr.New(fiber.StatusBadRequest, err.Error())
	}
	if req.NewPassword != req.ConfirmNewPassword {
		return apperr.New(fiber.StatusBadRequest, "The entered passwords are not matching")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		logger.SecurityLogger.Warn("Wrong old password on change", zap.String("user_id", user.ID.String()))
		return apperr.New(fiber.StatusBadRequest, "Old password is incorrect! Please try again")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	if err := repository.UpdatePassword(config.DB, user.ID, string(hashedPassword)); err != nil {
		return err
	}

	logger.AuditLogger.Info("Password changed", zap.String("user_id", user.ID.String()))
	return response.Success(c, fiber.StatusOK, fiber.Map{}, "Password has been changed successfully")
}

func UpdateDetails(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.New(fiber.StatusUnauthorized, "User not authenticated")
	}

	type UpdateDetailsRequest struct {
		NewName string `json:"newName"`
	}

	var req UpdateDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.New(fiber.StatusBadRequest, "Bad request")
	}

	newName := normalize(req.NewName)
	if newName == "" {
		return apperr.New(fiber.StatusBadRequest, "The new name cannot be empty")
	}

	if err := repository.UpdateFullName(config.DB, user.ID, newName); err != nil {
		return err
	}

	updated, err := repository.FindUserByID(config.DB, user.ID)
	if err != nil {
		return err
	}

	logger.AuditLogger.Info("User details updated", zap.String("user_id", user.ID.String()))
	return response.Success(c, fiber.StatusOK, updated, "The name has been updated successfully")
}

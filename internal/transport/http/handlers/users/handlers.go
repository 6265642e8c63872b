package usershandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"staffsync/internal/domain/auth"
	"staffsync/internal/domain/user"
	"staffsync/internal/platform/config"
	"staffsync/internal/platform/storage"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/middleware"
	"staffsync/internal/transport/http/shared"
)

// Image uploads get their own body cap, matching the original multer limit.
const maxUploadBytes = 5 * 1024 * 1024

type Handler struct {
	Users   *user.Store
	Uploads storage.Uploader

	TempDir            string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	SecureCookies      bool
	MaxBodyBytes       int64
}

func NewHandler(users *user.Store, uploads storage.Uploader, cfg config.Config) *Handler {
	return &Handler{
		Users:              users,
		Uploads:            uploads,
		TempDir:            cfg.TempDir,
		AccessTokenSecret:  cfg.AccessTokenSecret,
		RefreshTokenSecret: cfg.RefreshTokenSecret,
		AccessTokenTTL:     cfg.AccessTokenTTL,
		RefreshTokenTTL:    cfg.RefreshTokenTTL,
		SecureCookies:      cfg.SecureCookies,
		MaxBodyBytes:       cfg.MaxBodyBytes,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.BodyLimit(h.MaxBodyBytes))

		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/logout-user", middleware.RequireUser(h.handleLogout))
		r.Post("/refresh-token", h.handleRefresh)
		r.Post("/change-password", h.handleChangePassword)
		r.Get("/current-user", middleware.RequireUser(h.handleCurrentUser))
		r.Get("/employeeData", h.handleEmployeeData)
		r.Patch("/update-details", h.handleUpdateDetails)
		r.Post("/mfa/setup", middleware.RequireUser(h.handleMFASetup))
		r.Post("/mfa/enable", middleware.RequireUser(h.handleMFAEnable))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.BodyLimit(maxUploadBytes))

		r.Patch("/avatar", h.handleUpdateAvatar)
		r.Patch("/cover-image", middleware.RequireUser(h.handleUpdateCoverImage))
	})
}

type registerRequest struct {
	FirstName   string `json:"firstname" validate:"required"`
	LastName    string `json:"lastname" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Password    string `json:"password" validate:"required"`
	EmpID       string `json:"empID" validate:"required"`
	JoiningDate string `json:"joiningDate" validate:"required"`
	Department  string `json:"department" validate:"required"`
	Designation string `json:"designation" validate:"required"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	exists, err := h.Users.ExistsByEmailOrPhone(r.Context(), payload.Email, payload.Phone)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to register user")
		return
	}
	if exists {
		api.Fail(w, http.StatusConflict, "user with email or phone already exists")
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	id, err := h.Users.Create(r.Context(), &user.User{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		EmpID:        payload.EmpID,
		PasswordHash: hash,
		JoiningDate:  payload.JoiningDate,
		Department:   payload.Department,
		Designation:  payload.Designation,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			api.Fail(w, http.StatusConflict, "user with email, phone or empID already exists")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	created, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to register user")
		return
	}
	api.Success(w, http.StatusCreated, created, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	MFACode  string `json:"mfaCode"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	u, err := h.Users.GetByEmail(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user does not exist")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	if err := auth.CheckPassword(u.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid user credentials")
		return
	}

	if u.MFAEnabled && !auth.ValidateTOTP(payload.MFACode, u.MFASecret) {
		api.Fail(w, http.StatusUnauthorized, "valid mfa code required")
		return
	}

	accessToken, refreshToken, err := h.issueTokens(r, u)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}

	shared.SetAuthCookies(w, accessToken, refreshToken, h.SecureCookies)
	api.Success(w, http.StatusOK, map[string]any{
		"user":         u,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "User logged in successfully")
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetUser(r.Context())
	if err := h.Users.SetRefreshToken(r.Context(), identity.UserID, ""); err != nil && !errors.Is(err, user.ErrNotFound) {
		slog.Warn("logout refresh-token clear failed", "userId", identity.UserID, "err", err)
	}

	shared.ClearAuthCookies(w, h.SecureCookies)
	api.Success(w, http.StatusOK, map[string]any{}, "User logged out")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	incoming := ""
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		incoming = cookie.Value
	}
	if incoming == "" {
		var payload refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
			incoming = payload.RefreshToken
		}
	}
	if incoming == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	claims, err := auth.ParseRefreshToken(h.RefreshTokenSecret, incoming)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	u, err := h.Users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	// A token that parses but no longer matches the stored value has been
	// rotated away or revoked; it must not mint a new session.
	if u.RefreshToken == "" || incoming != u.RefreshToken {
		api.Fail(w, http.StatusUnauthorized, "refresh token is expired or used")
		return
	}

	accessToken, refreshToken, err := h.issueTokens(r, u)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}

	shared.SetAuthCookies(w, accessToken, refreshToken, h.SecureCookies)
	api.Success(w, http.StatusOK, map[string]any{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Access token refreshed")
}

type changePasswordRequest struct {
	EmployeeID  string `json:"employeeId" validate:"required"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	u, err := h.Users.GetByID(r.Context(), payload.EmployeeID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to change password")
		return
	}

	if err := auth.CheckPassword(u.PasswordHash, payload.OldPassword); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid old password")
		return
	}

	hash, err := auth.HashPassword(payload.NewPassword)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to change password")
		return
	}
	if err := h.Users.UpdatePassword(r.Context(), u.ID, hash); err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to change password")
		return
	}

	api.Success(w, http.StatusOK, map[string]any{}, "Password changed successfully")
}

func (h *Handler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetUser(r.Context())

	u, err := h.Users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	api.Success(w, http.StatusOK, u, "User fetched successfully")
}

func (h *Handler) handleEmployeeData(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	api.Success(w, http.StatusOK, users, "Users data fetched successfully")
}

type updateDetailsRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	user.ProfilePatch
}

func (h *Handler) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	var payload updateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	if _, err := h.Users.UpdateProfile(r.Context(), payload.EmployeeID, payload.ProfilePatch); err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "user not found")
		case errors.Is(err, user.ErrDuplicate):
			api.Fail(w, http.StatusConflict, "email, phone or empID already in use")
		default:
			api.Fail(w, http.StatusInternalServerError, "failed to update account details")
		}
		return
	}

	users, err := h.Users.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	api.Success(w, http.StatusOK, users, "Account details updated successfully")
}

func (h *Handler) handleUpdateAvatar(w http.ResponseWriter, r *http.Request) {
	employeeID := r.FormValue("employeeId")
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "employeeId is required")
		return
	}

	url, ok := h.stageAndUpload(w, r, "avatar")
	if !ok {
		return
	}

	if err := h.Users.SetAvatarURL(r.Context(), employeeID, url); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to update avatar")
		return
	}

	users, err := h.Users.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	api.Success(w, http.StatusOK, users, "Avatar image updated successfully")
}

func (h *Handler) handleUpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetUser(r.Context())

	url, ok := h.stageAndUpload(w, r, "coverImage")
	if !ok {
		return
	}

	if err := h.Users.SetCoverImageURL(r.Context(), identity.UserID, url); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		api.Fail(w, http.StatusInternalServerError, "failed to update cover image")
		return
	}

	u, err := h.Users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	api.Success(w, http.StatusOK, u, "Cover image updated successfully")
}

// stageAndUpload writes the multipart file to the temp dir, then pushes it
// through the object-storage boundary and returns the public URL. The staged
// name is freshly generated so concurrent uploads of the same client
// filename cannot clobber each other.
func (h *Handler) stageAndUpload(w http.ResponseWriter, r *http.Request, field string) (string, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, field+" file is missing")
		return "", false
	}
	defer file.Close()

	if err := os.MkdirAll(h.TempDir, 0o755); err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to store upload")
		return "", false
	}
	stagedPath := filepath.Join(h.TempDir, uuid.NewString()+filepath.Ext(header.Filename))
	staged, err := os.Create(stagedPath)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to store upload")
		return "", false
	}
	if _, err := io.Copy(staged, file); err != nil {
		staged.Close()
		api.Fail(w, http.StatusInternalServerError, "failed to store upload")
		return "", false
	}
	staged.Close()

	url, err := h.Uploads.Upload(r.Context(), stagedPath)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "error while uploading "+field)
		return "", false
	}
	return url, true
}

func (h *Handler) handleMFASetup(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetUser(r.Context())

	secret, otpauthURL, err := auth.GenerateTOTPSecret(identity.Email)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to generate mfa secret")
		return
	}
	if err := h.Users.SetMFASecret(r.Context(), identity.UserID, secret); err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to store mfa secret")
		return
	}
	api.Success(w, http.StatusOK, map[string]string{"secret": secret, "otpauthUrl": otpauthURL}, "MFA setup created")
}

type mfaCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

func (h *Handler) handleMFAEnable(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetUser(r.Context())

	var payload mfaCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if shared.Reject(w, shared.ValidateStruct(payload)) {
		return
	}

	u, err := h.Users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to enable mfa")
		return
	}
	if u.MFASecret == "" {
		api.Fail(w, http.StatusBadRequest, "mfa setup required")
		return
	}
	if !auth.ValidateTOTP(payload.Code, u.MFASecret) {
		api.Fail(w, http.StatusBadRequest, "invalid mfa code")
		return
	}
	if err := h.Users.EnableMFA(r.Context(), u.ID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "failed to enable mfa")
		return
	}
	api.Success(w, http.StatusOK, map[string]string{"status": "enabled"}, "MFA enabled")
}

func (h *Handler) issueTokens(r *http.Request, u *user.User) (string, string, error) {
	accessToken, err := auth.GenerateAccessToken(h.AccessTokenSecret, auth.AccessClaims{
		UserID: u.ID,
		Email:  u.Email,
		Phone:  u.Phone,
	}, h.AccessTokenTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := auth.GenerateRefreshToken(h.RefreshTokenSecret, auth.RefreshClaims{UserID: u.ID}, h.RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}

	if err := h.Users.SetRefreshToken(r.Context(), u.ID, refreshToken); err != nil {
		return "", "", err
	}
	u.RefreshToken = refreshToken
	return accessToken, refreshToken, nil
}

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/TomGruner85/task-manager-api/internal/api/shared"
	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/TomGruner85/task-manager-api/internal/platform/images"
	"github.com/TomGruner85/task-manager-api/internal/service"
	"github.com/TomGruner85/task-manager-api/internal/service/auth"
	"github.com/TomGruner85/task-manager-api/internal/store"
)

// avatarFormField is the multipart form field carrying the avatar upload.
const avatarFormField = "avatar"

// UserHandler handles account and session API requests.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles POST /users. A successful registration answers 201 with
// the new profile and a first session token, so the client is logged in
// without a separate login call.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password, req.Age)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	token, err := h.userService.IssueToken(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		User:  NewUserResponse(user),
		Token: token,
	})
}

// Login handles POST /users/login. Unknown email and wrong password answer
// identically: 400 with "Unable to login!".
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		// Malformed credentials cannot possibly log in; keep the message
		// identical to an authentication failure.
		shared.RespondWithError(w, r, http.StatusBadRequest, auth.ErrInvalidCredentials.Error())
		return
	}

	user, err := h.userService.Login(r.Context(), domain.NormalizeEmail(req.Email), req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	token, err := h.userService.IssueToken(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:  NewUserResponse(user),
		Token: token,
	})
}

// Logout handles POST /users/logout, revoking exactly the session token the
// request authenticated with. Other sessions stay valid.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	token := shared.GetAuthToken(r.Context())
	if err := h.userService.RevokeToken(r.Context(), user, token); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// LogoutAll handles POST /users/logoutAll, revoking every session.
func (h *UserHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.userService.RevokeAllTokens(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetProfile handles GET /users/me.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// UpdateProfile handles PATCH /users/me. Only name, email, password and age
// may be patched; naming any other field rejects the whole request with
// "Invalid updates!".
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	updates, err := shared.DecodeJSONMap(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user, updates)
	if err != nil {
		if errors.Is(err, domain.ErrDisallowedField) {
			HandleAPIError(w, r, err, InvalidProfileUpdateMessage)
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(updated))
}

// DeleteAccount handles DELETE /users/me, removing the account and every
// task it owns. The deleted profile is echoed back.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.userService.Remove(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// UploadAvatar handles POST /users/me/avatar. The multipart field "avatar"
// must carry a jpg, jpeg or png of at most images.MaxAvatarBytes; the stored
// result is always a 250x250 PNG.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	// One extra byte so an oversized upload is detected rather than
	// silently truncated.
	r.Body = http.MaxBytesReader(w, r.Body, images.MaxAvatarBytes+1024)

	file, header, err := r.FormFile(avatarFormField)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Please upload an image!")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, images.MaxAvatarBytes+1))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Please upload an image!")
		return
	}
	if len(data) > images.MaxAvatarBytes {
		shared.RespondWithError(w, r, http.StatusBadRequest, images.ErrImageTooLarge.Error())
		return
	}

	if err := h.userService.SetAvatar(r.Context(), user, header.Filename, data); err != nil {
		switch {
		case errors.Is(err, images.ErrUnsupportedFormat),
			errors.Is(err, images.ErrInvalidImage):
			shared.RespondWithError(w, r, http.StatusBadRequest, "Please upload an image!")
		case errors.Is(err, images.ErrImageTooLarge):
			shared.RespondWithError(w, r, http.StatusBadRequest, images.ErrImageTooLarge.Error())
		default:
			HandleAPIError(w, r, err, "")
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteAvatar handles DELETE /users/me/avatar.
func (h *UserHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.userService.ClearAvatar(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetAvatar handles GET /users/{id}/avatar. The endpoint is public: any
// user's avatar can be fetched by ID without authentication.
func (h *UserHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Avatar not found")
		return
	}

	avatar, err := h.userService.GetAvatar(r.Context(), userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Avatar not found")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(avatar); err != nil {
		// Headers are already written; nothing useful left to do.
		return
	}
}

// currentUser loads the authenticated user's full record, writing the error
// response itself when the request is not authenticated or the user has
// vanished since the middleware check.
func (h *UserHandler) currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return nil, false
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return nil, false
	}

	return user, true
}

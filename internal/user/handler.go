// AngelaMos | 2026
// handler.go

package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/radar/precatorios-api/internal/auth"
	"github.com/radar/precatorios-api/internal/core"
	"github.com/radar/precatorios-api/internal/middleware"
)

type PasswordChanger interface {
	ChangePassword(
		ctx context.Context,
		userID, currentPassword, newPassword string,
	) error
}

type Handler struct {
	service   *Service
	passwords PasswordChanger
	validator *validator.Validate
}

func NewHandler(service *Service, passwords PasswordChanger) *Handler {
	return &Handler{
		service:   service,
		passwords: passwords,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)

		r.With(adminOnly).Post("/", h.CreateUser)
		r.With(adminOnly).Get("/", h.ListUsers)

		r.Get("/{userID}", h.GetUser)
		r.Patch("/{userID}", h.UpdateUser)
		r.Patch("/{userID}/change-password", h.ChangePassword)
		r.With(adminOnly).Delete("/{userID}", h.DeleteUser)
	})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := ListUsersParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   query.Get("search"),
		Role:     query.Get("role"),
		Active:   parseBoolQuery(r, "ativo"),
	}
	params.Normalize()

	if params.Role != "" && !IsValidRole(params.Role) {
		core.BadRequest(w, "role must be one of ADMIN OPERATOR VIEWER")
		return
	}

	users, total, err := h.service.ListUsers(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToUserResponseList(users),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUser(
		r.Context(),
		middleware.GetPrincipal(r.Context()),
		userID,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

// UpdateUser is a partial update. Omitted keys are left alone and a null
// departamento or fotoUrl clears the column.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := req.Validate(h.validator); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	user, err := h.service.UpdateUser(
		r.Context(),
		middleware.GetPrincipal(r.Context()),
		userID,
		req,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

// ChangePassword only works on the caller's own account and always checks
// the current password, administrators included.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}
	if principal.ID != userID {
		core.Forbidden(w, "password can only be changed by its owner")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.passwords.ChangePassword(
		r.Context(),
		userID,
		req.CurrentPassword,
		req.NewPassword,
	)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			core.Unauthorized(w, "current password is incorrect")
			return
		}
		writeServiceError(w, err)
		return
	}

	core.OK(w, auth.MessageResponse{Message: "password changed"})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	err := h.service.DeleteUser(
		r.Context(),
		middleware.GetPrincipal(r.Context()),
		userID,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmailExists):
		core.JSONError(w, core.DuplicateError("email"))
	case errors.Is(err, ErrOwnRoleChange):
		core.Forbidden(w, "cannot change your own role")
	case errors.Is(err, ErrOwnStatusChange):
		core.Forbidden(w, "cannot change your own active status")
	case errors.Is(err, ErrOwnPasswordUpdate):
		core.Forbidden(w, "use change-password to change your own password")
	case errors.Is(err, ErrSelfDelete):
		core.Forbidden(w, "cannot delete your own account")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "user")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}

// pathUserID answers 404 for ids that cannot exist, so a malformed id and
// an unknown one look the same to the client.
func pathUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "userID")

	id, err := uuid.Parse(raw)
	if err != nil {
		core.NotFound(w, "user")
		return "", false
	}

	return id.String(), true
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

func parseBoolQuery(r *http.Request, key string) *bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return nil
	}

	return &parsed
}

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appuser "usersvc/internal/app/user"
	"usersvc/internal/http/pagination"
	"usersvc/internal/http/responses"
	"usersvc/internal/http/validation"
	"usersvc/internal/logging"
)

type Handler struct {
	service appuser.Service
	faults  *responses.FaultWriter
	logger  logging.Logger
}

func NewHandler(service appuser.Service, faults *responses.FaultWriter, logger logging.Logger) *Handler {
	return &Handler{
		service: service,
		faults:  faults,
		logger:  logger.With("component", "user_http_handler"),
	}
}

// Create POST /users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUserRequest
	if !validation.BindAndValidate(w, r, &req) {
		return
	}

	dto, err := h.service.Create(ctx, appuser.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.faults.Write(w, err)
		return
	}

	responses.WriteSuccess(w, http.StatusCreated, "User created", dto)
}

// GetByID GET /users/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	dto, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.faults.Write(w, err)
		return
	}

	responses.WriteSuccess(w, http.StatusOK, "OK", dto)
}

// List GET /users?offset=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, fields := pagination.ParseQuery(r)
	if fields != nil {
		responses.WriteValidationError(w, fields)
		return
	}

	items, total, err := h.service.List(ctx, appuser.ListUsersInput{
		Offset: page.Skip(),
		Limit:  page.Limit,
	})
	if err != nil {
		h.faults.Write(w, err)
		return
	}

	responses.WriteSuccess(w, http.StatusOK, "OK", pagination.Page{
		Items:      items,
		TotalCount: total,
		Offset:     page.Offset,
		Limit:      page.Limit,
	})
}

// Update PUT /users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !validation.BindAndValidate(w, r, &req) {
		return
	}

	dto, err := h.service.Update(ctx, id, appuser.UpdateUserInput{
		FullName: req.FullName,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.faults.Write(w, err)
		return
	}

	responses.WriteSuccess(w, http.StatusOK, "User updated", dto)
}

// Delete DELETE /users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.faults.Write(w, err)
		return
	}

	responses.WriteSuccess(w, http.StatusOK, "User deleted", DeleteUserResponse{
		Deleted: true,
		UserID:  id.String(),
	})
}

// parseID reads the {id} path param. A malformed UUID is a request
// validation failure, not a not-found.
func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteValidationError(w, []responses.FieldError{
			{Field: "id", Message: "must be a valid UUID"},
		})
		return uuid.Nil, false
	}
	return id, true
}

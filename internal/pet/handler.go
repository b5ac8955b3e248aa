package pet

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-pets-api/internal/apperror"
	"github.com/redmonkez12/go-pets-api/internal/httputil"
	"github.com/redmonkez12/go-pets-api/internal/user"
)

var errNoCurrentUser = apperror.New(apperror.KindUnauthorized, apperror.CodeMissingAuth, "missing authentication")

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PetCreateRequest represents the create pet request body
type PetCreateRequest struct {
	PetName string `json:"pet_name" validate:"required,min=1,max=50,nocontrol"`
}

// PetResponse represents a pet in API responses
type PetResponse struct {
	ID      int64     `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	PetName string    `json:"pet_name"`
}

func NewPetResponse(p *Pet) PetResponse {
	return PetResponse{
		ID:      p.ID,
		UserID:  p.UserID,
		PetName: p.PetName,
	}
}

// Create adds a pet to the current user
// @Summary      Create pet
// @Description  Create a pet owned by the authenticated user
// @Tags         pets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PetCreateRequest true "Pet"
// @Success      201 {object} PetResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Router       /pets/create [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	current, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, r, errNoCurrentUser)
		return
	}

	var req PetCreateRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	p, err := h.service.Create(r.Context(), current.ID, req.PetName)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondJSON(w, NewPetResponse(p), http.StatusCreated)
}

// ListMine lists the current user's pets
// @Summary      My pets
// @Description  List the authenticated user's pets ordered by name
// @Tags         pets
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} PetResponse
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Router       /pets/me [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	current, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, r, errNoCurrentUser)
		return
	}

	pets, err := h.service.ListByUser(r.Context(), current.ID)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	resp := make([]PetResponse, 0, len(pets))
	for i := range pets {
		resp = append(resp, NewPetResponse(&pets[i]))
	}
	httputil.RespondJSON(w, resp, http.StatusOK)
}

package forecast

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stafftrack/stafftrack/internal/rest"
	"github.com/stafftrack/stafftrack/pkg/validation"
)

type AllocationDTO struct {
	Id                  int             `json:"id"`
	BillingAssignmentId int             `json:"billingAssignmentId"`
	WeeklyHours         map[int]float64 `json:"weeklyHours"`
}

type allocationRequestDTO struct {
	BillingAssignmentId int             `json:"billingAssignmentId" validate:"required,gt=0"`
	WeeklyHours         map[int]float64 `json:"weeklyHours" validate:"required,dive,gte=0"`
}

type Handler struct {
	service  Service
	validate *validator.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// GetAllocations godoc
// @Summary List forecast allocations
// @Description Retrieve all forecast allocations for the current user
// @Tags Forecast
// @Produce json
// @Success 200 {array} AllocationDTO
// @Failure 403 {string} string "User not found"
// @Router /api/forecast [get]
// @Security XUserId
func (h *Handler) GetAllocations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	allocations, err := h.service.GetAllocations(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	allocationsDTO := make([]AllocationDTO, 0, len(allocations))
	for _, allocation := range allocations {
		allocationsDTO = append(allocationsDTO, AllocationToDTO(allocation))
	}
	if err := json.NewEncoder(w).Encode(allocationsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateAllocation godoc
// @Summary Create a forecast allocation
// @Description Validate and persist a new forecast allocation; weeks touched by the proposal must total exactly 40h
// @Tags Forecast
// @Accept json
// @Produce json
// @Param allocation body allocationRequestDTO true "Allocation"
// @Success 201 {object} AllocationDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 422 {object} validation.ResultDTO "Weekly balance violations"
// @Router /api/forecast [post]
// @Security XUserId
func (h *Handler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	request, ok := h.decodeAllocationRequest(w, r)
	if !ok {
		return
	}

	created, result, err := h.service.CreateAllocation(r.Context(), request.BillingAssignmentId, request.WeeklyHours)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !result.IsValid() {
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := json.NewEncoder(w).Encode(validation.ResultToDTO(result)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(AllocationToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateAllocation godoc
// @Summary Update a forecast allocation
// @Description Validate and persist new weekly hours for an existing allocation
// @Tags Forecast
// @Accept json
// @Produce json
// @Param allocationId path int true "Allocation ID"
// @Param allocation body allocationRequestDTO true "Allocation"
// @Success 200 {object} AllocationDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Allocation not found"
// @Failure 422 {object} validation.ResultDTO "Weekly balance violations"
// @Router /api/forecast/{allocationId} [put]
// @Security XUserId
func (h *Handler) UpdateAllocation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := h.allocationId(w, r)
	if !ok {
		return
	}
	request, ok := h.decodeAllocationRequest(w, r)
	if !ok {
		return
	}

	updated, result, err := h.service.UpdateAllocation(r.Context(), id, request.WeeklyHours)
	if err != nil {
		if errors.Is(err, ErrAllocationNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !result.IsValid() {
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := json.NewEncoder(w).Encode(validation.ResultToDTO(result)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(AllocationToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteAllocation godoc
// @Summary Delete a forecast allocation
// @Tags Forecast
// @Param allocationId path int true "Allocation ID"
// @Success 204 {string} string "Deleted"
// @Failure 404 {string} string "Allocation not found"
// @Router /api/forecast/{allocationId} [delete]
// @Security XUserId
func (h *Handler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.allocationId(w, r)
	if !ok {
		return
	}
	deleted, err := h.service.DeleteAllocation(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "allocation not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateAllocation godoc
// @Summary Validate a forecast proposal
// @Description Run the weekly balance check without persisting anything
// @Tags Forecast
// @Accept json
// @Produce json
// @Param editingId query int false "Allocation being edited (omit when creating)"
// @Param allocation body allocationRequestDTO true "Allocation"
// @Success 200 {object} validation.ResultDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/forecast/validate [post]
// @Security XUserId
func (h *Handler) ValidateAllocation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	editingId := 0
	if editingIdString := r.URL.Query().Get("editingId"); editingIdString != "" {
		parsed, err := strconv.Atoi(editingIdString)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid editingId format",
				Details: "Parameter editingId must be a number",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		editingId = parsed
	}

	request, ok := h.decodeAllocationRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.ValidateProposal(r.Context(), editingId, request.WeeklyHours)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(validation.ResultToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) decodeAllocationRequest(w http.ResponseWriter, r *http.Request) (allocationRequestDTO, bool) {
	var request allocationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return allocationRequestDTO{}, false
	}
	if err := h.validate.Struct(request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid allocation",
			Details: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return allocationRequestDTO{}, false
	}
	return request, true
}

func (h *Handler) allocationId(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["allocationId"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid allocationId format",
			Details: "Parameter allocationId must be a number",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return 0, false
	}
	return int(id), true
}

func AllocationToDTO(allocation Allocation) AllocationDTO {
	return AllocationDTO{
		Id:                  allocation.Id,
		BillingAssignmentId: allocation.BillingAssignmentId,
		WeeklyHours:         allocation.WeeklyHours,
	}
}

package billing

import (
	"encoding/json"
	"net/http"
	"time"
)

type AssignmentDTO struct {
	Id          int         `json:"id"`
	Description string      `json:"description"`
	Code        CodeDTO     `json:"code"`
	Project     *ProjectDTO `json:"project,omitempty"`
}

type CodeDTO struct {
	Id         int    `json:"id"`
	Code       string `json:"code"`
	StartDate  string `json:"startDate,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
}

type ProjectDTO struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetAssignments godoc
// @Summary List billing assignments
// @Description Retrieve all billing assignments with their code and project metadata
// @Tags Billing
// @Produce json
// @Success 200 {array} AssignmentDTO
// @Router /api/billing/assignment [get]
// @Security XUserId
func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	assignments, err := h.repo.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	assignmentsDTO := make([]AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		assignmentsDTO = append(assignmentsDTO, AssignmentToDTO(a))
	}
	if err := json.NewEncoder(w).Encode(assignmentsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func AssignmentToDTO(a Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		Id:          a.Id,
		Description: a.Description,
		Code: CodeDTO{
			Id:   a.Code.Id,
			Code: a.Code.Code,
		},
	}
	if !a.Code.StartDate.IsZero() {
		dto.Code.StartDate = a.Code.StartDate.Format(time.DateOnly)
	}
	if !a.Code.ExpiryDate.IsZero() {
		dto.Code.ExpiryDate = a.Code.ExpiryDate.Format(time.DateOnly)
	}
	if a.Code.Project != nil {
		dto.Project = &ProjectDTO{
			Id:       a.Code.Project.Id,
			Name:     a.Code.Project.Name,
			IsActive: a.Code.Project.Active,
		}
	}
	return dto
}

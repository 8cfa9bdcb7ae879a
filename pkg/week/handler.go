package week

import (
	"encoding/json"
	"net/http"
	"time"
)

type ReferenceDTO struct {
	Id         int    `json:"id"`
	WeekEnding string `json:"weekEnding"`
	Label      string `json:"label"`
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetReferences godoc
// @Summary List week references
// @Description Retrieve the planning horizon's week references used for forecasting
// @Tags Week
// @Produce json
// @Success 200 {array} ReferenceDTO
// @Router /api/week [get]
// @Security XUserId
func (h *Handler) GetReferences(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	refs, err := h.repo.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	refsDTO := make([]ReferenceDTO, 0, len(refs))
	for _, ref := range refs {
		refsDTO = append(refsDTO, ReferenceToDTO(ref))
	}
	if err := json.NewEncoder(w).Encode(refsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func ReferenceToDTO(ref Reference) ReferenceDTO {
	return ReferenceDTO{
		Id:         ref.Id,
		WeekEnding: ref.WeekEnding.Format(time.DateOnly),
		Label:      ref.Label,
	}
}

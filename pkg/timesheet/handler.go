package timesheet

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stafftrack/stafftrack/internal/rest"
	"github.com/stafftrack/stafftrack/pkg/validation"
)

type EntryDTO struct {
	BillingAssignmentId int     `json:"billingAssignmentId" validate:"required,gt=0"`
	Mon                 float64 `json:"mon" validate:"gte=0"`
	Tue                 float64 `json:"tue" validate:"gte=0"`
	Wed                 float64 `json:"wed" validate:"gte=0"`
	Thu                 float64 `json:"thu" validate:"gte=0"`
	Fri                 float64 `json:"fri" validate:"gte=0"`
}

type submissionRequestDTO struct {
	Entries []EntryDTO `json:"entries" validate:"dive"`
}

type SubmissionDTO struct {
	Id          int        `json:"id"`
	WeekEnding  string     `json:"weekEnding"`
	Entries     []EntryDTO `json:"entries"`
	SubmittedAt time.Time  `json:"submittedAt"`
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

// Submit godoc
// @Summary Submit a timesheet
// @Description Validate and persist a full week of timesheet entries
// @Tags Timesheet
// @Accept json
// @Produce json
// @Param weekEnding query string true "Week-ending date (Friday) in YYYY-MM-DD format"
// @Param submission body submissionRequestDTO true "Entries"
// @Success 201 {object} SubmissionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 409 {string} string "Already submitted"
// @Failure 422 {object} validation.ResultDTO "Validation failures"
// @Router /api/timesheet [post]
// @Security XUserId
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	weekEnding, ok := h.weekEnding(w, r)
	if !ok {
		return
	}

	var request submissionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	if err := h.validate.Struct(request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid timesheet entries",
			Details: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	submission, result, err := h.service.Submit(r.Context(), entriesFromDTO(request.Entries), weekEnding)
	if err != nil {
		if errors.Is(err, ErrAlreadySubmitted) {
			http.Error(w, err.Error(), http.StatusConflict)
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

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(SubmissionToDTO(submission)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetSubmission godoc
// @Summary Get a submitted timesheet
// @Tags Timesheet
// @Produce json
// @Param weekEnding query string true "Week-ending date (Friday) in YYYY-MM-DD format"
// @Success 200 {object} SubmissionDTO
// @Failure 404 {string} string "No submission for week"
// @Router /api/timesheet [get]
// @Security XUserId
func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	weekEnding, ok := h.weekEnding(w, r)
	if !ok {
		return
	}

	submission, err := h.service.GetSubmission(r.Context(), weekEnding)
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(SubmissionToDTO(submission)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) weekEnding(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	weekEndingString := r.URL.Query().Get("weekEnding")
	weekEnding, err := time.Parse(time.DateOnly, weekEndingString)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Incorrect weekEnding format",
			Details: "Date must be in YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return time.Time{}, false
	}
	return weekEnding, true
}

func entriesFromDTO(entriesDTO []EntryDTO) []Entry {
	entries := make([]Entry, 0, len(entriesDTO))
	for _, dto := range entriesDTO {
		entries = append(entries, Entry{
			BillingAssignmentId: dto.BillingAssignmentId,
			Hours: DailyHours{
				Mon: dto.Mon,
				Tue: dto.Tue,
				Wed: dto.Wed,
				Thu: dto.Thu,
				Fri: dto.Fri,
			},
		})
	}
	return entries
}

func SubmissionToDTO(submission Submission) SubmissionDTO {
	entries := make([]EntryDTO, 0, len(submission.Entries))
	for _, entry := range submission.Entries {
		entries = append(entries, EntryDTO{
			BillingAssignmentId: entry.BillingAssignmentId,
			Mon:                 entry.Hours.Mon,
			Tue:                 entry.Hours.Tue,
			Wed:                 entry.Hours.Wed,
			Thu:                 entry.Hours.Thu,
			Fri:                 entry.Hours.Fri,
		})
	}
	return SubmissionDTO{
		Id:          submission.Id,
		WeekEnding:  submission.WeekEnding.Format(time.DateOnly),
		Entries:     entries,
		SubmittedAt: submission.SubmittedAt,
	}
}

package validation

import "time"

type ErrorDTO struct {
	Code         ErrorCode `json:"code"`
	Message      string    `json:"message"`
	WeekId       int       `json:"weekId,omitempty"`
	WeekLabel    string    `json:"weekLabel,omitempty"`
	CurrentTotal float64   `json:"currentTotal,omitempty"`
	NewHours     float64   `json:"newHours,omitempty"`
	FinalTotal   float64   `json:"finalTotal,omitempty"`
	AssignmentId int       `json:"billingAssignmentId,omitempty"`
	Date         string    `json:"date,omitempty"`
}

type ResultDTO struct {
	IsValid bool       `json:"isValid"`
	Errors  []ErrorDTO `json:"errors"`
}

// ResultToDTO flattens a Result into its JSON representation. Variant fields that
// do not apply to a given error kind are omitted.
func ResultToDTO(result Result) ResultDTO {
	errs := make([]ErrorDTO, 0, len(result.Errors))
	for _, e := range result.Errors {
		errs = append(errs, errorToDTO(e))
	}
	return ResultDTO{IsValid: result.IsValid(), Errors: errs}
}

func errorToDTO(e Error) ErrorDTO {
	dto := ErrorDTO{Code: e.Code(), Message: e.Message()}
	switch v := e.(type) {
	case WeeklyBalanceError:
		dto.WeekId = v.WeekId
		dto.WeekLabel = v.WeekLabel
		dto.CurrentTotal = v.CurrentTotal
		dto.NewHours = v.NewHours
		dto.FinalTotal = v.FinalTotal
	case ProjectInactiveError:
		dto.AssignmentId = v.AssignmentId
	case BeforeStartDateError:
		dto.AssignmentId = v.AssignmentId
		dto.Date = v.Date.Format(time.DateOnly)
	case ExpiredCodeError:
		dto.AssignmentId = v.AssignmentId
		dto.Date = v.Date.Format(time.DateOnly)
	case DuplicateEntryError:
		dto.AssignmentId = v.AssignmentId
		dto.Date = v.Date.Format(time.DateOnly)
	}
	return dto
}

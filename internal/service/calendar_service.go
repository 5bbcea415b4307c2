package service

import (
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/dto"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/calendar"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
)

// ErrDateInvalid malformed calendar date
var ErrDateInvalid = apperrors.Validation("dates must use the YYYY-MM-DD format")

// CalendarService working-day calculator bound to the configured holidays
type CalendarService interface {
	WorkingDays(req *dto.WorkingDaysRequest) (*dto.WorkingDaysResponse, error)
}

type calendarService struct {
	holidays calendar.HolidaySet
}

// NewCalendarService creates a CalendarService; holidays may be nil
func NewCalendarService(holidays calendar.HolidaySet) CalendarService {
	return &calendarService{holidays: holidays}
}

// WorkingDays counts weekdays in [start, end] that are not holidays.
// A start after end yields 0.
func (s *calendarService) WorkingDays(req *dto.WorkingDaysRequest) (*dto.WorkingDaysResponse, error) {
	start, err := calendar.ParseDate(req.Start)
	if err != nil {
		return nil, ErrDateInvalid
	}
	end, err := calendar.ParseDate(req.End)
	if err != nil {
		return nil, ErrDateInvalid
	}

	return &dto.WorkingDaysResponse{
		Start:       start.Format(calendar.DateLayout),
		End:         end.Format(calendar.DateLayout),
		WorkingDays: calendar.WorkingDays(start, end, s.holidays),
	}, nil
}

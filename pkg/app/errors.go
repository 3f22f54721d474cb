package app

import (
	"errors"
	"fmt"

	"tableflip.dev/timelined/pkg/period"
)

var (
	// ErrDuplicateMonth is matched by every *DuplicateMonthError.
	ErrDuplicateMonth = errors.New("app: a period already exists for this month")
	// ErrNameRequired is returned for blank period names.
	ErrNameRequired = errors.New("app: period name required")
	// ErrNoPersistence is returned when the service has nowhere to store periods.
	ErrNoPersistence = errors.New("app: no persistence configured")
	// ErrPeriodNotFound is returned by lookups, never by mutations.
	ErrPeriodNotFound = errors.New("app: period not found")
	// ErrWatchUnsupported is returned by Watch for backends that cannot report
	// external writes.
	ErrWatchUnsupported = errors.New("app: storage does not support watching")
	// ErrAmbiguous is returned when a reference matches more than one period.
	ErrAmbiguous = errors.New("app: period reference is ambiguous")
)

// DuplicateMonthError reports the period already occupying the month.
type DuplicateMonthError struct {
	Existing *period.Period
}

func (e *DuplicateMonthError) Error() string {
	return fmt.Sprintf("A period %q already exists for this month. Only one period per month is allowed.", e.Existing.Name)
}

func (e *DuplicateMonthError) Is(target error) bool {
	return target == ErrDuplicateMonth
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Domain errors. Controllers translate these to HTTP statuses; anything
// else becomes a logged 500 with a generic message.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	ErrRoomsUnavailable = errors.New("some rooms do not exist, belong to another hotel, or are inactive")
	ErrRoomConflict     = errors.New("some rooms have conflicting reservations")
	ErrRoomTypeInUse    = errors.New("room type is referenced by existing rooms")
	ErrRoomInUse        = errors.New("room is held by an open reservation")

	ErrDuplicateEmail     = errors.New("email already in use")
	ErrDuplicateDocument  = errors.New("a guest with this document already exists")
	ErrDuplicateHotelCode = errors.New("hotel code already exists")
	ErrDuplicateRoom      = errors.New("room number already exists in this hotel")
)

// ValidationError marks missing or malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InvalidTransitionError reports a reservation status change not allowed by
// the transition table.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
}

// isDuplicateKeyErr matches the store's unique-constraint violations across
// the MySQL and sqlite dialects.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed")
}

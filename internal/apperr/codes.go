// Package apperr provides structured error handling for the service
// boundary: machine-readable codes with an HTTP status mapping.
package apperr

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Event validation errors
	CodeEventTitleEmpty         Code = "EVENT_TITLE_EMPTY"
	CodeEventInvalidCategory    Code = "EVENT_INVALID_CATEGORY"
	CodeEventInvalidSchedule    Code = "EVENT_INVALID_SCHEDULE"
	CodeEventStartInPast        Code = "EVENT_START_IN_PAST"
	CodeEventInvalidCapacity    Code = "EVENT_INVALID_CAPACITY"
	CodeEventLocationIncomplete Code = "EVENT_LOCATION_INCOMPLETE"

	// Lifecycle errors
	CodeEventNotApproved       Code = "EVENT_NOT_APPROVED"
	CodeEventFull              Code = "EVENT_FULL"
	CodeEventInvalidTransition Code = "EVENT_INVALID_TRANSITION"

	// RSVP errors
	CodeRSVPInvalidStatus Code = "RSVP_INVALID_STATUS"

	// User validation errors
	CodeUserNameEmpty       Code = "USER_NAME_EMPTY"
	CodeUserEmailEmpty      Code = "USER_EMAIL_EMPTY"
	CodeUserEmailTaken      Code = "USER_EMAIL_TAKEN"
	CodeUserPasswordEmpty   Code = "USER_PASSWORD_EMPTY"
	CodeUserInvalidInterest Code = "USER_INVALID_INTEREST"

	// Access errors
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeEventTitleEmpty,
		CodeEventInvalidCategory,
		CodeEventInvalidSchedule,
		CodeEventStartInPast,
		CodeEventInvalidCapacity,
		CodeEventLocationIncomplete,
		CodeRSVPInvalidStatus,
		CodeUserNameEmpty,
		CodeUserEmailEmpty,
		CodeUserPasswordEmpty,
		CodeUserInvalidInterest:
		return http.StatusBadRequest

	// Conflict - state doesn't allow the operation
	case CodeEventNotApproved,
		CodeEventFull,
		CodeEventInvalidTransition,
		CodeUserEmailTaken:
		return http.StatusConflict

	case CodeNotFound:
		return http.StatusNotFound

	case CodeUnauthorized:
		return http.StatusUnauthorized

	case CodeForbidden:
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}

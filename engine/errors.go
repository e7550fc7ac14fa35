package engine

import "fmt"

// Error codes returned by engine operations. Codes are stable and
// machine-checkable; messages are for humans.
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "ENTITY_NOT_FOUND"
	ErrCodeInsufficientFunds = "INSUFFICIENT_CREDITS"
	ErrCodeInsufficientSpace = "INSUFFICIENT_CARGO_SPACE"
	ErrCodeInsufficientCargo = "INSUFFICIENT_CARGO"
	ErrCodeInsufficientFuel  = "INSUFFICIENT_FUEL"
	ErrCodeFuelCapacity      = "FUEL_CAPACITY_EXCEEDED"
	ErrCodeAlreadyThere      = "ALREADY_AT_DESTINATION"
	ErrCodeGameExists        = "GAME_ALREADY_EXISTS"
	ErrCodeDatabase          = "DATABASE_ERROR"
)

// Error represents a failed engine operation. A failed operation never leaves
// the game partially updated.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
}

func validationError(message string) *Error {
	return &Error{Code: ErrCodeValidation, Message: message}
}

func notFoundError(message, detail string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: message, Detail: detail}
}

func databaseError(err error) *Error {
	return &Error{Code: ErrCodeDatabase, Message: "a database error occurred", Detail: err.Error()}
}

// asEngineError converts an error bubbled out of a store transaction back into
// a typed engine error. Unknown errors are treated as storage failures.
func asEngineError(err error) *Error {
	if err == nil {
		return nil
	}
	if engineErr, ok := err.(*Error); ok {
		return engineErr
	}
	return databaseError(err)
}

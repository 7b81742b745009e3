package domain

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

type InvalidTransitionError struct {
	Message string
}

func (e *InvalidTransitionError) Error() string {
	return e.Message
}

type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

func NewInvalidTransitionError(message string) error {
	return &InvalidTransitionError{Message: message}
}

func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

func NewNotFoundError(message string) error {
	return &NotFoundError{Message: message}
}

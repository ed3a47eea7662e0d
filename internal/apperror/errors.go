// Package apperror defines the application's error taxonomy. Every failure that reaches
// the HTTP boundary is an *Error carrying a status, a stable code and a client message.
package apperror

import (
	"errors"
	"net/http"
)

// Code identifies an error kind independently of its message.
type Code string

const (
	CodeUserExists             Code = "UserExists"
	CodeUsernameExists         Code = "UsernameExists"
	CodeEmailExists            Code = "EmailExists"
	CodeInvalidCredentials     Code = "InvalidCredentials"
	CodeUserNotFound           Code = "UserNotFound"
	CodeInvalidCurrentPassword Code = "InvalidCurrentPassword"
	CodeValidationFailed       Code = "ValidationFailed"
	CodeInvalidRequest         Code = "InvalidRequest"
	CodeAuthenticationRequired Code = "AuthenticationRequired"
	CodeForbidden              Code = "Forbidden"
	CodePostNotFound           Code = "PostNotFound"
	CodeCommentNotFound        Code = "CommentNotFound"
	CodeLikeExists             Code = "LikeExists"
	CodeNotFound               Code = "NotFound"
	CodeTooManyAttempts        Code = "TooManyAttempts"
	CodeInternal               Code = "InternalError"
)

// Error is a typed application error.
type Error struct {
	Status  int
	Code    Code
	Message string
	// Fields holds per-field messages for ValidationFailed.
	Fields map[string]string
	// Err is the underlying cause. It is logged, never sent to clients.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error.
func New(status int, code Code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Wrap attaches a cause to an Error and returns it.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func UserExists() *Error {
	return New(http.StatusBadRequest, CodeUserExists, "User with this email already exists")
}

func UsernameExists() *Error {
	return New(http.StatusBadRequest, CodeUsernameExists, "Username is already taken")
}

func EmailExists() *Error {
	return New(http.StatusBadRequest, CodeEmailExists, "Email is already taken")
}

// InvalidCredentials is returned for both an unknown email and a wrong password.
func InvalidCredentials() *Error {
	return New(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials")
}

func UserNotFound() *Error {
	return New(http.StatusNotFound, CodeUserNotFound, "User not found")
}

func InvalidCurrentPassword() *Error {
	return New(http.StatusBadRequest, CodeInvalidCurrentPassword, "Current password is incorrect")
}

// ValidationFailed reports rejected input. fields may be nil.
func ValidationFailed(message string, fields map[string]string) *Error {
	if message == "" {
		message = "Validation failed"
	}
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeValidationFailed,
		Message: message,
		Fields:  fields,
	}
}

func InvalidRequest(message string) *Error {
	return New(http.StatusBadRequest, CodeInvalidRequest, message)
}

func AuthenticationRequired() *Error {
	return New(http.StatusUnauthorized, CodeAuthenticationRequired, "Authentication required")
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, CodeForbidden, message)
}

func PostNotFound() *Error {
	return New(http.StatusNotFound, CodePostNotFound, "Post not found")
}

func CommentNotFound() *Error {
	return New(http.StatusNotFound, CodeCommentNotFound, "Comment not found")
}

func LikeExists() *Error {
	return New(http.StatusConflict, CodeLikeExists, "Post is already liked")
}

func TooManyAttempts() *Error {
	return New(http.StatusTooManyRequests, CodeTooManyAttempts, "Too many attempts, try again later")
}

// Internal hides err behind a generic message.
func Internal(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// From returns err as an *Error, converting unknown errors to Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// CodeOf returns the code of err, or "" when err is nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	return From(err).Code
}

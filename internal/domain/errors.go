package domain

import (
	"errors"
	"fmt"
)

// MalformedCredentialError means the Authorization header did not look like a
// bearer token at all (missing, wrong scheme, wrong shape).
type MalformedCredentialError struct {
	Msg string
}

func (e MalformedCredentialError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "malformed credential"
}

// InvalidCredentialError means the token had the right shape but failed
// verification (bad signature, expired, missing identity claim).
type InvalidCredentialError struct {
	Err error
}

func (e InvalidCredentialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid credential: %v", e.Err)
	}
	return "invalid credential"
}

func (e InvalidCredentialError) Unwrap() error { return e.Err }

// UpstreamUnavailableError is a transport-level failure reaching the
// recommendation service, including deadline expiry.
type UpstreamUnavailableError struct {
	Op  string
	Err error
}

func (e UpstreamUnavailableError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("recommendation service unreachable during %s", e.Op)
	}
	return "recommendation service unreachable"
}

func (e UpstreamUnavailableError) Unwrap() error { return e.Err }

// UpstreamError is a non-success response from the recommendation service.
type UpstreamError struct {
	Op     string
	Status int
}

func (e UpstreamError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("recommendation service returned %d during %s", e.Status, e.Op)
	}
	return fmt.Sprintf("recommendation service returned %d", e.Status)
}

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsMalformedCredential(err error) bool {
	var target MalformedCredentialError
	return errors.As(err, &target)
}

func IsInvalidCredential(err error) bool {
	var target InvalidCredentialError
	return errors.As(err, &target)
}

func IsUpstreamUnavailable(err error) bool {
	var target UpstreamUnavailableError
	return errors.As(err, &target)
}

func IsUpstreamError(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

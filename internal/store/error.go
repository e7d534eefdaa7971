package store

import "errors"

var (
	ErrProfileNotFound = errors.New("store profile not found")
	ErrAlreadyApproved = errors.New("store profile already approved")
	ErrPendingApproval = errors.New("store profile submitted, awaiting approval")
)

package dog

import "errors"

var (
	ErrDogNotFound   = errors.New("dog not found")
	ErrNotOwner      = errors.New("not dog owner")
	ErrNameRequired  = errors.New("name is required")
	ErrOwnerRequired = errors.New("owner is required")
	ErrBirthInFuture = errors.New("birth date is in the future")
)

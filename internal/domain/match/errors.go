package match

import "errors"

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrInvalidAction = errors.New("invalid match action")
	ErrSelfMatch     = errors.New("cannot match with yourself")
	ErrActorRequired = errors.New("authenticated user required")
	ErrTargetMissing = errors.New("target user is required")
)

package keyword

import "errors"

var (
	ErrInvalidRef      = errors.New("invalid keyword target")
	ErrInvalidKeyword  = errors.New("invalid keyword")
	ErrInvalidCategory = errors.New("invalid keyword category")
)

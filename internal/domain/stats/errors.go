package stats

import "errors"

var (
	ErrInvalidGroupBy = errors.New("group_by must be day or week")
	ErrInvalidRange   = errors.New("from must not be after to")
	ErrRangeTooLarge  = errors.New("range must not exceed 366 days")
)

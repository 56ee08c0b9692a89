package walk

import "errors"

var (
	ErrWalkNotFound   = errors.New("walk not found")
	ErrGroupRequired  = errors.New("walk group is required")
	ErrGroupNotFound  = errors.New("walk group not found")
	ErrTitleRequired  = errors.New("title is required")
	ErrNotGroupMember = errors.New("not an active member of the walk group")
	ErrActorRequired  = errors.New("authenticated user required")
)

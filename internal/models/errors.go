package models

import "errors"

var (
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidExamDate = errors.New("invalid exam date")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrItemNotFound    = errors.New("schedule item not found")
)

// ErrNotFound is returned by store lookups that match nothing.
var ErrNotFound = errors.New("not found")

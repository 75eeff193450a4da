package apperrors

import "errors"

var (
	ErrSourceUnreadable = errors.New("source unreadable")
	ErrNoHeader         = errors.New("input has no header row")
)

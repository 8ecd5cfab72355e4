package domain

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrCaseNotFound      = errors.New("case not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionInactive   = errors.New("session is no longer active")
	ErrEmptyText         = errors.New("situation text is empty")
	ErrTextTooLong       = errors.New("situation text exceeds maximum length")
	ErrInvalidCaseStatus = errors.New("invalid case status")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidLanguage   = errors.New("unsupported language preference")
	ErrInvalidCategory   = errors.New("invalid legal category")
	ErrInvalidKnowledge  = errors.New("knowledge entry is missing required fields")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrBackupFailed      = errors.New("case backup failed")
)

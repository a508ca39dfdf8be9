package domain

import "errors"

var (
	ErrInvalidProjectID   = errors.New("project_id is required")
	ErrInvalidProjectName = errors.New("project_name is required")
	ErrInvalidState       = errors.New("state must be a valid Australian state or territory")
	ErrProjectExists      = errors.New("project already exists")
	ErrProjectNotFound    = errors.New("project not found")
)

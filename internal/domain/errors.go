package domain

import "errors"

var (
	ErrMissingField  = errors.New("missing required field")
	ErrNotAnArray    = errors.New("keybindings must be a JSON array")
	ErrRunNotFound   = errors.New("run not found")
	ErrUnknownFormat = errors.New("unknown input format")
	ErrUnknownPolicy = errors.New("unknown remap policy")
)

package core

import "errors"

// Common errors.
var (
	ErrInvalidNote     = errors.New("invalid note")
	ErrIndexOutOfRange = errors.New("note index out of range")
	ErrExpired         = errors.New("note is expired")
	ErrCorruptSlot     = errors.New("persisted notes are corrupt")
	ErrNotFound        = errors.New("key not found")
	ErrReadOnly        = errors.New("store is in read-only mode")
	ErrInvalidKey      = errors.New("invalid key")
)

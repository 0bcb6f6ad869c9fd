package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyBatch   = errors.New("batch has no sources")
)

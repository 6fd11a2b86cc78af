package models

import "errors"

var (
	// ErrEmptySequence is returned when a sequence or row pair shares no values.
	ErrEmptySequence = errors.New("no shared values")
	// ErrSamePosition is returned when both ends of a sequence are the same cell.
	ErrSamePosition = errors.New("sequence positions are identical")
	// ErrSameRow is returned when a row is paired with itself.
	ErrSameRow = errors.New("duplicate row pair uses the same row twice")
	// ErrMisalignedShared is returned when shared values and shared columns
	// differ in length.
	ErrMisalignedShared = errors.New("shared values and shared columns are not aligned")
	// ErrNilSheet is returned when a scorer is given no sheet context.
	ErrNilSheet = errors.New("sheet is nil")
)

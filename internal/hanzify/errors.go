package hanzify

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedInput matches any *UnsupportedInputError via errors.Is.
	ErrUnsupportedInput = errors.New("hanzify: unsupported input")

	// ErrSegmentation matches any *SegmentationError via errors.Is.
	ErrSegmentation = errors.New("hanzify: segmentation failed")
)

// UnsupportedInputError reports a name containing a character outside the
// recognized alphabet. It is caused by the caller's input.
type UnsupportedInputError struct {
	Input string
	Rune  rune
	// Pos is the rune offset of Rune in the NFC-composed input.
	Pos int
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("hanzify: cannot transliterate %q: unsupported character %q at position %d", e.Input, e.Rune, e.Pos)
}

func (e *UnsupportedInputError) Is(target error) bool {
	return target == ErrUnsupportedInput
}

// SegmentationError means the phoneme table has no entry starting at some
// position of an already validated word. It indicates a defect in the table,
// not in the input.
type SegmentationError struct {
	Word   string
	Offset int
}

func (e *SegmentationError) Error() string {
	return fmt.Sprintf("hanzify: no table entry matches %q at offset %d", e.Word, e.Offset)
}

func (e *SegmentationError) Is(target error) bool {
	return target == ErrSegmentation
}

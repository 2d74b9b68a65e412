package wellbeing

import "errors"

// MaxInputChars bounds the accepted input length in characters.
const MaxInputChars = 5000

var (
	ErrEmptyInput   = errors.New("please enter how you're feeling or what's on your mind")
	ErrInputTooLong = errors.New("input is too long")
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeInternal   = "internal_error"
)

// EmptyInputMessage is shown to users who submit nothing.
const EmptyInputMessage = "Please enter how you're feeling or what's on your mind."

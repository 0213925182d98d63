package dummy

import "errors"

var (
	UnexpectedInput = errors.New("Unexpected input")
	NetworkFailure  = errors.New("Oh no i've fallen and i can't get up")
)

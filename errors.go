package coffeemachine

import (
	"errors"
	"fmt"
)

// Input errors reported through Output.Err. None of them end the session.
var (
	ErrUnknownCommand        = errors.New("unknown command")
	ErrUnknownRecipeSelector = errors.New("unknown coffee type")
	ErrNonNumericInput       = errors.New("not a whole number")
	ErrInsufficientResource  = errors.New("insufficient resource")
	ErrStateViolation        = errors.New("machine is off")
)

// ShortageError names the first resource that blocked a sale.
type ShortageError struct {
	Resource Resource
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("not enough %s", e.Resource)
}

func (e *ShortageError) Unwrap() error {
	return ErrInsufficientResource
}

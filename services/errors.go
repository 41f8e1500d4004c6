package services

import (
	"errors"
	"fmt"
)

// Sentinel errors controllers translate into HTTP responses. All of
// these are request-scoped and recoverable; none kill the process.
var (
	ErrNotFound           = errors.New("not found")
	ErrInsufficientStock  = errors.New("insufficient stock for this adjustment")
	ErrCancelNotAllowed   = errors.New("only pending or confirmed orders can be cancelled")
	ErrMissingTableNumber = errors.New("table number is required for dine-in orders")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidTransitionError names both states so the caller can see which
// move was rejected.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

type DishUnavailableError struct {
	Dish string
}

func (e *DishUnavailableError) Error() string {
	return fmt.Sprintf("dish %q is not available", e.Dish)
}

type InsufficientIngredientsError struct {
	Dish       string
	Ingredient string
}

func (e *InsufficientIngredientsError) Error() string {
	if e.Dish != "" {
		return fmt.Sprintf("insufficient %q for dish %q", e.Ingredient, e.Dish)
	}
	return fmt.Sprintf("insufficient %q for this order", e.Ingredient)
}

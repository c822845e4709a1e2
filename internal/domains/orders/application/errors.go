package application

import (
	"errors"
	"fmt"

	"github.com/foodorder/go-gin-services/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant before
	// any I/O happened.
	ErrInvalidInput = errors.New("invalid order input")
)

// PriceMismatchError reports the catalog-computed total alongside the one the
// client declared.
type PriceMismatchError struct {
	Expected float64
	Received float64
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("total price mismatch: expected %.2f, received %.2f", e.Expected, e.Received)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingUserID) ||
		errors.Is(err, domain.ErrMissingMenuItemID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidTotalPrice) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

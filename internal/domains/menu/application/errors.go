package application

import (
	"errors"
	"fmt"

	"github.com/foodorder/go-gin-services/internal/domains/menu/domain"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid menu item input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidName) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidImageURL) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

package domain

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxNameLength caps dish names on the storefront cards.
const MaxNameLength = 50

var (
	ErrInvalidName     = errors.New("name must be between 1 and 50 characters")
	ErrInvalidPrice    = errors.New("price must be a finite non-negative number")
	ErrInvalidImageURL = errors.New("image url format is invalid")
)

var imageURLPattern = regexp.MustCompile(`^(https?://)?([\da-z.-]+)\.([a-z.]{2,6})([/\w .-]*)*/?$`)

// Item is a sellable dish in the catalog. Available doubles as the "status"
// boolean on the wire; unavailable items stay in the catalog but cannot be
// ordered.
type Item struct {
	ID        string
	Name      string
	Price     float64
	ImageURL  string
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem validates the invariants and builds a new catalog item.
func NewItem(name string, price float64, imageURL string, available bool) (*Item, error) {
	now := time.Now().UTC()
	item := &Item{
		ID:        uuid.NewString(),
		Available: available,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Rename(name); err != nil {
		return nil, err
	}
	if err := item.ChangePrice(price); err != nil {
		return nil, err
	}
	if err := item.SetImageURL(imageURL); err != nil {
		return nil, err
	}
	return item, nil
}

// Rename trims and validates the dish name.
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return ErrInvalidName
	}
	i.Name = name
	i.touch()
	return nil
}

// ChangePrice enforces the finite non-negative price invariant.
func (i *Item) ChangePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return ErrInvalidPrice
	}
	i.Price = price
	i.touch()
	return nil
}

// SetImageURL stores an optional, format-checked image link.
func (i *Item) SetImageURL(url string) error {
	url = strings.TrimSpace(url)
	if url != "" && !imageURLPattern.MatchString(url) {
		return ErrInvalidImageURL
	}
	i.ImageURL = url
	i.touch()
	return nil
}

// SetAvailability flips the ordering switch.
func (i *Item) SetAvailability(available bool) {
	i.Available = available
	i.touch()
}

// Toggle inverts availability, the storefront admin's quick action.
func (i *Item) Toggle() {
	i.SetAvailability(!i.Available)
}

// Validate enforces invariants on the aggregate.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" || len(i.Name) > MaxNameLength {
		return ErrInvalidName
	}
	if math.IsNaN(i.Price) || math.IsInf(i.Price, 0) || i.Price < 0 {
		return ErrInvalidPrice
	}
	if i.ImageURL != "" && !imageURLPattern.MatchString(i.ImageURL) {
		return ErrInvalidImageURL
	}
	return nil
}

func (i *Item) touch() {
	i.UpdatedAt = time.Now().UTC()
}

package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status enumerates order progression. Any status may move to any other; the
// kitchen occasionally re-opens delivered orders after a complaint.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Statuses lists the enumeration in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// PriceTolerance bounds the acceptable drift between the declared total and
// the catalog-computed total at creation time.
const PriceTolerance = 0.01

var (
	ErrMissingUserID     = errors.New("user id is required")
	ErrMissingMenuItemID = errors.New("menu item id is required")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInvalidTotalPrice = errors.New("total price must be a finite non-negative number")
	ErrInvalidStatus     = errors.New("order status is invalid")
)

// Order models a user's request for a quantity of one menu item. MenuItemID is
// a plain string reference verified against the catalog at creation time only;
// there is no enforced foreign key and deleting the item leaves orders intact.
type Order struct {
	ID         string
	UserID     string
	MenuItemID string
	Quantity   int
	TotalPrice float64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder validates and constructs a pending order with a fresh UUID.
func NewOrder(userID, menuItemID string, quantity int, totalPrice float64) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		ID:         uuid.NewString(),
		UserID:     strings.TrimSpace(userID),
		MenuItemID: strings.TrimSpace(menuItemID),
		Quantity:   quantity,
		TotalPrice: totalPrice,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.UserID == "" {
		return ErrMissingUserID
	}
	if o.MenuItemID == "" {
		return ErrMissingMenuItemID
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !isFiniteNonNegative(o.TotalPrice) {
		return ErrInvalidTotalPrice
	}
	if !IsValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// ChangeStatus moves the order to another known status and bumps updated_at.
func (o *Order) ChangeStatus(status Status) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Reprice overwrites quantity and total verbatim. The catalog is not
// consulted again here; the reconciler job compensates for drift.
func (o *Order) Reprice(quantity int, totalPrice float64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !isFiniteNonNegative(totalPrice) {
		return ErrInvalidTotalPrice
	}
	o.Quantity = quantity
	o.TotalPrice = totalPrice
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// ParseStatus converts raw client input into a Status.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.TrimSpace(raw))
	if !IsValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsValidStatus reports whether the value belongs to the enumeration.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// MatchesTotal reports whether a declared total agrees with unit price times
// quantity within PriceTolerance. A tiny epsilon absorbs binary float
// representation error so a difference of exactly one cent passes.
func MatchesTotal(unitPrice float64, quantity int, declared float64) bool {
	const epsilon = 1e-9
	expected := unitPrice * float64(quantity)
	return math.Abs(expected-declared) <= PriceTolerance+epsilon
}

func isFiniteNonNegative(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0) && value >= 0
}

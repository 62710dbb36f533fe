package shops

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// StorageKey is the key the shop list is persisted under.
	StorageKey = "shops"
	// DefaultCategory is assigned to new shops created without a category.
	DefaultCategory = "General"
	// MaxRating is the upper bound of the rating scale; the lower bound is 0.
	MaxRating = 5.0
)

var (
	// ErrShopNotFound indicates no shop has the requested id.
	ErrShopNotFound = errors.New("shop not found")
	// ErrNameRequired rejects submissions whose name is empty or whitespace.
	ErrNameRequired = errors.New("shop name is required")
	// ErrInvalidRating rejects ratings that are not finite numbers.
	ErrInvalidRating = errors.New("rating must be a number between 0 and 5")
	// ErrNotConfirmed means the delete prompt was declined.
	ErrNotConfirmed = errors.New("delete not confirmed")
)

// Shop is a directory entry.
type Shop struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	Phone       *string `json:"phone,omitempty"`
}

// Draft holds not-yet-committed field values. A nil field was not touched.
type Draft struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
}

// DraftFromShop copies every field of shop into a draft.
func DraftFromShop(shop Shop) Draft {
	d := Draft{
		Name:        ptr(shop.Name),
		Description: ptr(shop.Description),
		Address:     ptr(shop.Address),
		Category:    ptr(shop.Category),
		Rating:      ptr(shop.Rating),
	}
	if shop.Phone != nil {
		d.Phone = ptr(*shop.Phone)
	}
	return d
}

func (d Draft) validate() (Draft, error) {
	if d.Name == nil || strings.TrimSpace(*d.Name) == "" {
		return d, ErrNameRequired
	}
	if d.Rating != nil {
		rating, err := normalizeRating(*d.Rating)
		if err != nil {
			return d, err
		}
		d.Rating = &rating
	}
	return d, nil
}

// newShop builds a shop from a validated draft, filling defaults.
func (d Draft) newShop(id string) Shop {
	shop := Shop{
		ID:       id,
		Name:     *d.Name,
		Category: DefaultCategory,
	}
	if d.Description != nil {
		shop.Description = *d.Description
	}
	if d.Address != nil {
		shop.Address = *d.Address
	}
	if d.Category != nil && *d.Category != "" {
		shop.Category = *d.Category
	}
	if d.Rating != nil {
		shop.Rating = *d.Rating
	}
	shop.Phone = d.phone()
	return shop
}

// mergeInto overlays the set fields of a validated draft onto shop.
func (d Draft) mergeInto(shop Shop) Shop {
	shop.Name = *d.Name
	if d.Description != nil {
		shop.Description = *d.Description
	}
	if d.Address != nil {
		shop.Address = *d.Address
	}
	if d.Category != nil {
		shop.Category = *d.Category
	}
	if d.Rating != nil {
		shop.Rating = *d.Rating
	}
	if d.Phone != nil {
		shop.Phone = d.phone()
	}
	return shop
}

// clone returns a copy of s that shares no memory with it.
func (s Shop) clone() Shop {
	if s.Phone != nil {
		s.Phone = ptr(*s.Phone)
	}
	return s
}

// phone maps a blank phone input to an absent phone.
func (d Draft) phone() *string {
	if d.Phone == nil || strings.TrimSpace(*d.Phone) == "" {
		return nil
	}
	return ptr(*d.Phone)
}

// ParseRating converts rating form input into a stored rating. Empty input
// means 0; anything that is not a finite number is rejected.
func ParseRating(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, raw)
	}
	return normalizeRating(value)
}

// normalizeRating clamps to [0, MaxRating] and rounds to one decimal place.
func normalizeRating(value float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidRating
	}
	value = math.Max(0, math.Min(MaxRating, value))
	return math.Round(value*10) / 10, nil
}

func ptr[T any](v T) *T {
	return &v
}

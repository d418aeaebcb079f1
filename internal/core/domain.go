package core

import (
	"errors"
	"strings"
	"time"
)

// Category is one of the five fixed cost categories.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryHealth    Category = "health"
	CategoryHousing   Category = "housing"
	CategorySport     Category = "sport"
	CategoryEducation Category = "education"
)

// Categories returns the closed category set in report order.
func Categories() []Category {
	return []Category{CategoryFood, CategoryHealth, CategoryHousing, CategorySport, CategoryEducation}
}

var (
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyDescription = errors.New("empty description")
	ErrNegativeSum      = errors.New("negative sum")
	ErrInvalidUserID    = errors.New("invalid user id")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrUnknownUser      = errors.New("user not found")
	ErrDuplicateUser    = errors.New("user already exists")
)

// ParseCategory normalizes a label (trimmed, lowercased) against the fixed
// set. The same normalization runs on the write path and when grouping report
// buckets, so a label can never produce a sixth bucket.
func ParseCategory(label string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(label)))
	switch c {
	case CategoryFood, CategoryHealth, CategoryHousing, CategorySport, CategoryEducation:
		return c, nil
	}
	return "", ErrInvalidCategory
}

type (
	// CostItem is immutable once stored. Sums travel as plain JSON numbers
	// to stay wire-compatible with existing clients.
	CostItem struct {
		ID          int64     `json:"-"`
		UserID      int64     `json:"userid"`
		Category    Category  `json:"category"`
		Description string    `json:"description"`
		Sum         float64   `json:"sum"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// CostDraft is the pre-validation shape of a cost item as submitted by
	// a client. A zero CreatedAt means "now".
	CostDraft struct {
		UserID      int64
		Category    string
		Description string
		Sum         float64
		CreatedAt   time.Time
	}

	User struct {
		ID        int64     `json:"id"`
		FirstName string    `json:"first_name"`
		LastName  string    `json:"last_name"`
		Birthday  time.Time `json:"birthday"`
	}
)

// Item validates the draft and produces the immutable cost item, defaulting
// the creation date to now when the draft carries none.
func (d CostDraft) Item(now time.Time) (CostItem, error) {
	if d.UserID <= 0 {
		return CostItem{}, ErrInvalidUserID
	}
	category, err := ParseCategory(d.Category)
	if err != nil {
		return CostItem{}, err
	}
	description := strings.TrimSpace(d.Description)
	if description == "" {
		return CostItem{}, ErrEmptyDescription
	}
	if d.Sum < 0 {
		return CostItem{}, ErrNegativeSum
	}
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	return CostItem{
		UserID:      d.UserID,
		Category:    category,
		Description: description,
		Sum:         d.Sum,
		CreatedAt:   createdAt,
	}, nil
}

func (u User) Validate() error {
	if u.ID <= 0 {
		return ErrInvalidUserID
	}
	if strings.TrimSpace(u.FirstName) == "" {
		return errors.New("missing first_name")
	}
	if strings.TrimSpace(u.LastName) == "" {
		return errors.New("missing last_name")
	}
	if u.Birthday.IsZero() {
		return errors.New("missing birthday")
	}
	return nil
}

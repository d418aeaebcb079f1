package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// MonthKey identifies a monthly report: one user, one calendar month.
type MonthKey struct {
	UserID int64
	Year   int
	Month  int
}

func (k MonthKey) Validate() error {
	if k.UserID <= 0 {
		return ErrInvalidUserID
	}
	if k.Month < 1 || k.Month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Closed reports whether the month is strictly earlier than the current
// (year, month) at the given instant. Closed months receive no further
// writes in normal operation, which is what makes their reports cacheable.
func (k MonthKey) Closed(now time.Time) bool {
	if k.Year != now.Year() {
		return k.Year < now.Year()
	}
	return k.Month < int(now.Month())
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%d/%04d-%02d", k.UserID, k.Year, k.Month)
}

// ReportItem is a single cost projected into a report bucket.
type ReportItem struct {
	Sum         float64 `json:"sum"`
	Description string  `json:"description"`
	Day         int     `json:"day"`
}

// CategoryCosts is one report bucket. It marshals as a single-key object,
// {"food": [...]}, matching the wire format clients already consume.
type CategoryCosts struct {
	Category Category
	Items    []ReportItem
}

func (c CategoryCosts) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []ReportItem{}
	}
	return json.Marshal(map[string][]ReportItem{string(c.Category): items})
}

func (c *CategoryCosts) UnmarshalJSON(data []byte) error {
	raw := map[string][]ReportItem{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("expected single-category bucket, got %d keys", len(raw))
	}
	for label, items := range raw {
		category, err := ParseCategory(label)
		if err != nil {
			return err
		}
		c.Category = category
		c.Items = items
	}
	return nil
}

// MonthlyReport is the derived, recomputable aggregation of a user's costs
// for one month. All five categories are always present, in fixed order.
type MonthlyReport struct {
	UserID int64           `json:"userid"`
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Costs  []CategoryCosts `json:"costs"`
}

// Key returns the report's identity.
func (r MonthlyReport) Key() MonthKey {
	return MonthKey{UserID: r.UserID, Year: r.Year, Month: r.Month}
}

// Package report builds monthly cost reports and memoizes the ones that can
// no longer change.
package report

import (
	"sort"

	"costmanager/internal/core"
)

// Build aggregates cost items into the fixed five-category report for key.
// It is a pure transformation: no I/O, no caching, items are read as given.
// Each bucket is ordered by day of month ascending; same-day items keep
// their input order.
func Build(key core.MonthKey, items []core.CostItem) core.MonthlyReport {
	rep := core.MonthlyReport{
		UserID: key.UserID,
		Year:   key.Year,
		Month:  key.Month,
		Costs:  make([]core.CategoryCosts, 0, 5),
	}
	for _, category := range core.Categories() {
		bucket := make([]core.ReportItem, 0)
		for _, item := range items {
			if item.Category != category {
				continue
			}
			bucket = append(bucket, core.ReportItem{
				Sum:         item.Sum,
				Description: item.Description,
				Day:         item.CreatedAt.Day(),
			})
		}
		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].Day < bucket[j].Day })
		rep.Costs = append(rep.Costs, core.CategoryCosts{Category: category, Items: bucket})
	}
	return rep
}

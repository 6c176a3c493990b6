// Package inventory walks the color variants of one product page and
// reconciles per-color per-size stock readings into a normalized variant
// table with an overall stock status.
package inventory

import "golfwear-extractor/internal/types"

// Reconciler folds per-color readings into a deduplicated VariantRecord
// collection. Dedup is first-seen-wins per (color, size): the first
// extraction strategy that produced a non-empty result for a color is more
// authoritative than any later pass, so later duplicates are dropped, never
// merged or overwritten.
type Reconciler struct {
	records []types.VariantRecord
	seen    map[variantKey]bool
}

type variantKey struct {
	color string
	size  string
}

// NewReconciler creates an empty reconciler for one extraction run.
func NewReconciler() *Reconciler {
	return &Reconciler{seen: make(map[variantKey]bool)}
}

// Add appends readings for one color. Record order follows color discovery
// order, then reading discovery order within the color.
func (r *Reconciler) Add(color string, readings []types.SizeStockReading) {
	for _, reading := range readings {
		key := variantKey{color: color, size: reading.Size}
		if r.seen[key] {
			continue
		}
		r.seen[key] = true
		r.records = append(r.records, types.VariantRecord{
			Color:   color,
			Size:    reading.Size,
			InStock: reading.InStock,
			Status:  reading.Status,
		})
	}
}

// Records returns the reconciled collection in insertion order.
func (r *Reconciler) Records() []types.VariantRecord {
	return r.records
}

// Summarize derives the InventorySummary from a reconciled record collection.
func Summarize(records []types.VariantRecord) types.InventorySummary {
	summary := types.InventorySummary{TotalVariants: len(records)}
	for _, rec := range records {
		if rec.InStock {
			summary.InStockCount++
		} else {
			summary.OutOfStockCount++
		}
	}

	switch {
	case summary.TotalVariants == 0:
		summary.OverallStatus = types.StatusUnknown
	case summary.OutOfStockCount == 0:
		summary.OverallStatus = types.StatusInStock
	case summary.InStockCount == 0:
		summary.OverallStatus = types.StatusOutOfStock
	default:
		summary.OverallStatus = types.StatusPartialStock
	}
	return summary
}

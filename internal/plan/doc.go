// Package plan derives a deterministic hardware recommendation from a
// property intake draft and a product tier.
//
// # Architecture
//
//	┌──────────────┐     ┌───────────────────────────────┐
//	│ Draft intake │────▶│ Normalize (defaults, trimming)│
//	└──────────────┘     └───────────────┬───────────────┘
//	                                     │
//	                                     ▼
//	                     ┌───────────────────────────────┐
//	                     │ Build: tier BOM table + rules │
//	                     │  required / add-ons / gaps    │
//	                     └───────────────┬───────────────┘
//	                                     ▼
//	                     ┌───────────────────────────────┐
//	                     │ Bundles (all tiers) +         │
//	                     │ QuoteAddOns (quote ids)       │
//	                     └───────────────────────────────┘
//
// Every tier has a fixed bill of materials. The only driver of "gap"
// status is an exterior-door count exceeding the tier's contact-sensor
// allotment; everything else the tier falls short on becomes an optional
// add-on instead. Required placements and optional add-ons are two
// separate ordered lists that may both carry the same item key, since
// consumers render them independently.
//
// # Thread Safety
//
// Build, Bundles, and QuoteAddOns are pure functions over their
// arguments. The draft is never mutated; normalization returns a copy.
// PlanStore is the only stateful type and is safe for concurrent use to
// the extent its *sql.DB is.
package plan

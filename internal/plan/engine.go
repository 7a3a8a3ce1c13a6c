package plan

import "fmt"

// Motion-sensor recommendation bounds.
const (
	minMotionRecommended = 1
	maxMotionRecommended = 6
)

// contactGapImpact is the impact text on the contact-sensor gap.
const contactGapImpact = "Exterior door coverage."

// Build derives the plan for one tier from a normalized draft, including
// the cross-tier bundle comparison. Callers may pass a raw draft; Build
// normalizes it first, so two calls with the same input always return
// value-equal plans.
func Build(draft Draft, tier Tier) Plan {
	d := Normalize(draft)
	p := buildForTier(&d, tier)
	p.Bundles = bundles(&d)
	return p
}

// Bundles runs the planning procedure for all three tiers and renders each
// as a one-line summary, so the homeowner can compare what each tier would
// and would not cover.
func Bundles(draft Draft) []Bundle {
	d := Normalize(draft)
	return bundles(&d)
}

func bundles(d *Draft) []Bundle {
	out := make([]Bundle, 0, len(AllTiers()))
	for _, tier := range AllTiers() {
		p := buildForTier(d, tier)
		out = append(out, Bundle{
			Tier:    tier,
			Status:  p.Status,
			Summary: bundleSummary(tier, &p),
		})
	}
	return out
}

func bundleSummary(tier Tier, p *Plan) string {
	switch p.Status {
	case StatusGap:
		missing := 0
		for _, g := range p.Gaps {
			if g.Key == ItemContactSensor {
				missing = g.Missing
				break
			}
		}
		return fmt.Sprintf("%s: gap (missing %d door sensor(s))", tier.DisplayName(), missing)
	case StatusCompleteAddons:
		return fmt.Sprintf("%s: covered + optional add-ons", tier.DisplayName())
	default:
		return fmt.Sprintf("%s: covered.", tier.DisplayName())
	}
}

// buildForTier runs the rule sequence for a single tier over an already
// normalized draft. Order matters only for the output lists; every rule
// reads the draft and the BOM, never earlier lines.
func buildForTier(d *Draft, tier Tier) Plan {
	bom := BOMFor(tier)
	p := Plan{Tier: tier}

	// Contact sensors track the named exterior doors. Doors beyond the
	// tier's allotment are the one and only source of gap status.
	doorCount := len(d.ExteriorDoors)
	if doorCount > 0 {
		p.Required = append(p.Required, Item{
			Key:      ItemContactSensor,
			Label:    labelFor(ItemContactSensor),
			Quantity: min(doorCount, bom.ContactSensors),
			Required: true,
			Zones:    truncate(d.ExteriorDoors, bom.ContactSensors),
		})
		if doorCount > bom.ContactSensors {
			p.Gaps = append(p.Gaps, Gap{
				Key:     ItemContactSensor,
				Missing: doorCount - bom.ContactSensors,
				Impact:  contactGapImpact,
			})
		}
	}

	if bom.DoorbellCameras > 0 {
		p.Required = append(p.Required, requiredItem(ItemVideoDoorbell, bom.DoorbellCameras, nil))
	}
	if bom.IndoorCameras > 0 {
		p.Required = append(p.Required, requiredItem(ItemIndoorCamera, bom.IndoorCameras,
			truncate(indoorZones, bom.IndoorCameras)))
	}
	if bom.Sirens > 0 {
		p.Required = append(p.Required, requiredItem(ItemSiren, bom.Sirens, nil))
	}
	if bom.SmartPlugs > 0 {
		p.Required = append(p.Required, requiredItem(ItemSmartPlug, bom.SmartPlugs, nil))
	}

	// Exterior cameras are demand-driven: an apartment without a stated
	// security priority does not get one even when the tier includes it.
	// A household that wants one on a tier without any gets it as an
	// add-on, never a gap.
	wantsExterior := d.HasPriority("security") || d.PropertyType != PropertyApartment
	if wantsExterior {
		if bom.OutdoorCameras > 0 {
			p.Required = append(p.Required, requiredItem(ItemOutdoorCamera, bom.OutdoorCameras, nil))
		} else {
			p.AddOns = append(p.AddOns, Item{
				Key:      ItemOutdoorCamera,
				Label:    labelFor(ItemOutdoorCamera),
				Quantity: 1,
				Note:     "Exterior coverage beyond this bundle",
			})
		}
	}

	// Motion: always place the tier's quantity, top up the recommendation
	// shortfall as an add-on.
	motionRec := clampInt(motionBase[d.SizeBand]+max(0, d.Floors-1),
		minMotionRecommended, maxMotionRecommended)
	if bom.MotionSensors > 0 {
		p.Required = append(p.Required, requiredItem(ItemMotionSensor, bom.MotionSensors, nil))
	}
	if motionRec > bom.MotionSensors {
		p.AddOns = append(p.AddOns, Item{
			Key:      ItemMotionSensor,
			Label:    labelFor(ItemMotionSensor),
			Quantity: motionRec - bom.MotionSensors,
			Note:     fmt.Sprintf("Recommended %d for this home", motionRec),
		})
	}

	// Leak: same pattern, with named zones following the placement order.
	leakRec := leakRecommended[d.SizeBand]
	if bom.LeakSensors > 0 {
		p.Required = append(p.Required, requiredItem(ItemLeakSensor, bom.LeakSensors,
			truncate(leakZones, bom.LeakSensors)))
	}
	if leakRec > bom.LeakSensors {
		p.AddOns = append(p.AddOns, Item{
			Key:      ItemLeakSensor,
			Label:    labelFor(ItemLeakSensor),
			Quantity: leakRec - bom.LeakSensors,
			Zones:    slice(leakZones, bom.LeakSensors, leakRec),
		})
	}

	// Recording host and drives come straight off the tier table.
	if bom.Host != HostNone {
		p.Required = append(p.Required, Item{
			Key:      ItemRecordingHost,
			Label:    fmt.Sprintf("%s (%s)", labelFor(ItemRecordingHost), bom.Host),
			Quantity: 1,
			Required: true,
			Note:     string(bom.Host),
		})
	}
	if bom.SurveillanceDrives > 0 {
		p.Required = append(p.Required, requiredItem(ItemSurveillanceDrive, bom.SurveillanceDrives, nil))
	}

	// Ground-window exposure always suggests extra contact sensors; it
	// never feeds the required count or the gap.
	switch d.WindowExposure {
	case WindowsSome:
		p.AddOns = append(p.AddOns, windowAddOn(2))
	case WindowsYes:
		p.AddOns = append(p.AddOns, windowAddOn(4))
	}

	if bom.PoEInjectors > 0 && (bom.OutdoorCameras > 0 || wantsExterior) {
		p.AddOns = append(p.AddOns, Item{
			Key:      ItemPoEInjector,
			Label:    labelFor(ItemPoEInjector),
			Quantity: bom.PoEInjectors,
			Note:     "Powers PoE cameras without a dedicated switch",
		})
	}

	switch {
	case len(p.Gaps) > 0:
		p.Status = StatusGap
	case len(p.AddOns) > 0:
		p.Status = StatusCompleteAddons
	default:
		p.Status = StatusComplete
	}
	return p
}

func requiredItem(key string, qty int, zones []string) Item {
	return Item{
		Key:      key,
		Label:    labelFor(key),
		Quantity: qty,
		Required: true,
		Zones:    zones,
	}
}

func windowAddOn(qty int) Item {
	return Item{
		Key:      ItemContactSensor,
		Label:    labelFor(ItemContactSensor),
		Quantity: qty,
		Note:     "Ground-level window protection",
	}
}

// truncate returns at most n leading elements of s, nil when n <= 0.
func truncate(s []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(s) {
		n = len(s)
	}
	out := make([]string, n)
	copy(out, s[:n])
	return out
}

// slice returns elements [from, to) of s, clamped to its bounds.
func slice(s []string, from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(s) {
		to = len(s)
	}
	if from >= to {
		return nil
	}
	out := make([]string, to-from)
	copy(out, s[from:to])
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

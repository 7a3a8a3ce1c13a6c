package plan

// Tier identifies one of the three fixed product bundles.
type Tier string

// Tier constants, cheapest first.
const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// AllTiers returns the tiers in comparison order.
func AllTiers() []Tier {
	return []Tier{TierBronze, TierSilver, TierGold}
}

// DisplayName returns the customer-facing tier name.
func (t Tier) DisplayName() string {
	switch t {
	case TierBronze:
		return "Bronze"
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	default:
		return string(t)
	}
}

// IsValidTier reports whether t is a known tier.
func IsValidTier(t Tier) bool {
	return t == TierBronze || t == TierSilver || t == TierGold
}

// PropertyType is the intake property category.
type PropertyType string

// Property type constants.
const (
	PropertyHouse     PropertyType = "house"
	PropertyTownhouse PropertyType = "townhouse"
	PropertyApartment PropertyType = "apartment"
)

// SizeBand buckets the property size.
type SizeBand string

// Size band constants.
const (
	SizeSmall  SizeBand = "small"
	SizeMedium SizeBand = "medium"
	SizeLarge  SizeBand = "large"
)

// GarageType is the intake garage answer.
type GarageType string

// Garage type constants.
const (
	GarageNone     GarageType = "none"
	GarageAttached GarageType = "attached"
	GarageDetached GarageType = "detached"
)

// WindowExposure is the ground-level window exposure answer.
type WindowExposure string

// Window exposure constants.
const (
	WindowsNo   WindowExposure = "no"
	WindowsSome WindowExposure = "some"
	WindowsYes  WindowExposure = "yes"
)

// Draft is the normalized property intake. It is the only mutable input to
// the engine and the engine never mutates it.
type Draft struct {
	PropertyType   PropertyType   `json:"property_type"`
	Floors         int            `json:"floors"`
	SizeBand       SizeBand       `json:"size_band"`
	Garage         GarageType     `json:"garage"`
	ExteriorDoors  []string       `json:"exterior_doors"`
	WindowExposure WindowExposure `json:"window_exposure"`
	HasPets        bool           `json:"has_pets"`
	HasElder       bool           `json:"has_elder"`
	Priorities     []string       `json:"priorities"`
}

// HasPriority reports whether the draft states the given priority.
// Priorities are lower-cased during normalization.
func (d *Draft) HasPriority(p string) bool {
	for _, pr := range d.Priorities {
		if pr == p {
			return true
		}
	}
	return false
}

// CoverageStatus summarizes how well a tier covers the draft.
type CoverageStatus string

// Coverage status constants, worst first.
const (
	StatusGap            CoverageStatus = "gap"
	StatusCompleteAddons CoverageStatus = "complete_with_addons"
	StatusComplete       CoverageStatus = "complete"
)

// Item keys used in required and add-on lists.
const (
	ItemContactSensor     = "contact_sensor"
	ItemMotionSensor      = "motion_sensor"
	ItemLeakSensor        = "leak_sensor"
	ItemVideoDoorbell     = "video_doorbell"
	ItemIndoorCamera      = "indoor_camera"
	ItemOutdoorCamera     = "outdoor_camera"
	ItemSiren             = "siren"
	ItemSmartPlug         = "smart_plug"
	ItemRecordingHost     = "recording_host"
	ItemSurveillanceDrive = "surveillance_drive"
	ItemPoEInjector       = "poe_injector"
)

// Item is one line of a plan: a device with a quantity, either required by
// the tier or suggested as an optional add-on. Required and optional lines
// share this shape but live in separate ordered lists.
type Item struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Quantity int      `json:"quantity"`
	Required bool     `json:"required"`
	Zones    []string `json:"zones,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// Gap is a required-quantity shortfall against the tier's bill of
// materials.
type Gap struct {
	Key     string `json:"key"`
	Missing int    `json:"missing"`
	Impact  string `json:"impact"`
}

// Bundle is the one-line cross-tier comparison entry.
type Bundle struct {
	Tier    Tier           `json:"tier"`
	Status  CoverageStatus `json:"status"`
	Summary string         `json:"summary"`
}

// HostSKU selects the recording-host variant a tier ships. At most one SKU
// is ever active per tier.
type HostSKU string

// Host SKU constants.
const (
	HostNone  HostSKU = ""
	HostSmall HostSKU = "small"
	HostLarge HostSKU = "large"
)

// Plan is the derived recommendation for one tier, with the cross-tier
// comparison attached.
type Plan struct {
	Tier     Tier           `json:"tier"`
	Status   CoverageStatus `json:"status"`
	Required []Item         `json:"required"`
	AddOns   []Item         `json:"add_ons"`
	Gaps     []Gap          `json:"gaps"`
	Bundles  []Bundle       `json:"bundles"`
}

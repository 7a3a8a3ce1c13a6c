package plan

// BOM is a tier's fixed bill of materials. Quantities are what the bundle
// ships; the engine turns them into required lines and tops the rest up
// with optional add-ons. These tables are the source of truth: the rules in
// engine.go never override a quantity, they only decide which list a line
// lands in.
type BOM struct {
	DoorbellCameras    int
	IndoorCameras      int
	OutdoorCameras     int
	ContactSensors     int
	MotionSensors      int
	LeakSensors        int
	Sirens             int
	SmartPlugs         int
	Host               HostSKU
	SurveillanceDrives int
	PoEInjectors       int
}

var tierBOMs = map[Tier]BOM{
	TierBronze: {
		DoorbellCameras: 1,
		IndoorCameras:   1,
		ContactSensors:  4,
		MotionSensors:   1,
		LeakSensors:     1,
		Sirens:          1,
	},
	TierSilver: {
		DoorbellCameras: 1,
		IndoorCameras:   2,
		OutdoorCameras:  1,
		ContactSensors:  6,
		MotionSensors:   2,
		LeakSensors:     2,
		Sirens:          1,
		SmartPlugs:      2,
		PoEInjectors:    1,
	},
	TierGold: {
		DoorbellCameras:    1,
		IndoorCameras:      3,
		OutdoorCameras:     2,
		ContactSensors:     8,
		MotionSensors:      3,
		LeakSensors:        3,
		Sirens:             1,
		SmartPlugs:         4,
		Host:               HostLarge,
		SurveillanceDrives: 2,
		PoEInjectors:       2,
	},
}

// BOMFor returns the bill of materials for a tier. Unknown tiers get the
// zero BOM, which produces an empty plan rather than an error.
func BOMFor(t Tier) BOM {
	return tierBOMs[t]
}

// motionBase is the recommended motion-sensor base count per size band.
var motionBase = map[SizeBand]int{
	SizeSmall:  1,
	SizeMedium: 2,
	SizeLarge:  3,
}

// leakRecommended is the recommended leak-sensor count per size band.
var leakRecommended = map[SizeBand]int{
	SizeSmall:  1,
	SizeMedium: 2,
	SizeLarge:  3,
}

// leakZones are the named placement zones for leak sensors, truncated to
// the quantity being placed.
var leakZones = []string{"Kitchen sink", "Water heater", "Basement/laundry"}

// indoorZones are the default interior camera angles, truncated to the
// tier's indoor-camera quantity.
var indoorZones = []string{"Main living area", "Hallway"}

// itemLabels maps item keys to customer-facing labels.
var itemLabels = map[string]string{
	ItemContactSensor:     "Contact sensor",
	ItemMotionSensor:      "Motion sensor",
	ItemLeakSensor:        "Leak sensor",
	ItemVideoDoorbell:     "Video doorbell",
	ItemIndoorCamera:      "Indoor camera",
	ItemOutdoorCamera:     "Outdoor PoE camera",
	ItemSiren:             "Siren/chime",
	ItemSmartPlug:         "Smart plug",
	ItemRecordingHost:     "Recording host",
	ItemSurveillanceDrive: "Surveillance drive",
	ItemPoEInjector:       "PoE injector",
}

func labelFor(key string) string {
	if l, ok := itemLabels[key]; ok {
		return l
	}
	return key
}

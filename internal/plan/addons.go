package plan

// Quote add-on identifiers handed to the quoting flow.
const (
	QuoteAdditionalSensors = "additional-sensors"
	QuoteAdditionalCameras = "additional-cameras"
	QuoteWaterShutoff      = "water-shutoff"
	QuoteUPSBackup         = "ups-backup"
)

// QuoteAddOn is one externally quotable add-on.
type QuoteAddOn struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}

var quoteNotes = map[string]string{
	QuoteAdditionalSensors: "Extra contact, motion, or leak sensors beyond the bundle",
	QuoteAdditionalCameras: "Extra camera coverage",
	QuoteWaterShutoff:      "Automatic water shut-off valve",
	QuoteUPSBackup:         "Battery backup for hub and recording host",
}

var sensorItemKeys = map[string]struct{}{
	ItemContactSensor: {},
	ItemMotionSensor:  {},
	ItemLeakSensor:    {},
}

var cameraItemKeys = map[string]struct{}{
	ItemVideoDoorbell: {},
	ItemIndoorCamera:  {},
	ItemOutdoorCamera: {},
}

// QuoteAddOns maps a plan's optional add-ons and the draft's answers to the
// deduplicated, ordered set of quotable add-on ids. First insertion wins
// the position; later triggers for the same id are skipped.
func QuoteAddOns(p *Plan, draft Draft) []QuoteAddOn {
	d := Normalize(draft)

	var out []QuoteAddOn
	seen := make(map[string]struct{}, 4)
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, QuoteAddOn{ID: id, Note: quoteNotes[id]})
	}

	hasLeakAddOn := false
	for _, item := range p.AddOns {
		if _, ok := sensorItemKeys[item.Key]; ok {
			add(QuoteAdditionalSensors)
		}
		if _, ok := cameraItemKeys[item.Key]; ok {
			add(QuoteAdditionalCameras)
		}
		if item.Key == ItemLeakSensor {
			hasLeakAddOn = true
		}
	}

	if hasLeakAddOn || d.HasPriority("water") {
		add(QuoteWaterShutoff)
	}

	if upsRelevant(p) && (d.HasPriority("security") || d.HasElder) {
		add(QuoteUPSBackup)
	}

	return out
}

// upsRelevant reports whether the plan has anything a battery backup would
// protect: the gold bundle, or any local recording host.
func upsRelevant(p *Plan) bool {
	if p.Tier == TierGold {
		return true
	}
	for _, item := range p.Required {
		if item.Key == ItemRecordingHost {
			return true
		}
	}
	return false
}

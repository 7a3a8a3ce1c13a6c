package plan

import (
	"strings"

	"github.com/hearthwatch/planner-core/internal/layout"
)

// maxPriorities caps the number of stated priorities kept after
// normalization.
const maxPriorities = 2

// Normalize fills a draft's defaults and cleans its free-text fields,
// returning a copy. The input is never mutated.
//
// Defaults: property type house, one floor, medium size, no garage, no
// ground-window exposure. Door labels are trimmed and blank entries
// dropped; priorities are trimmed, lower-cased, and capped at two.
func Normalize(d Draft) Draft {
	out := d

	switch d.PropertyType {
	case PropertyHouse, PropertyTownhouse, PropertyApartment:
	default:
		out.PropertyType = PropertyHouse
	}
	if d.Floors < 1 {
		out.Floors = 1
	}
	switch d.SizeBand {
	case SizeSmall, SizeMedium, SizeLarge:
	default:
		out.SizeBand = SizeMedium
	}
	switch d.Garage {
	case GarageNone, GarageAttached, GarageDetached:
	default:
		out.Garage = GarageNone
	}
	switch d.WindowExposure {
	case WindowsNo, WindowsSome, WindowsYes:
	default:
		out.WindowExposure = WindowsNo
	}

	out.ExteriorDoors = nil
	for _, label := range d.ExteriorDoors {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		out.ExteriorDoors = append(out.ExteriorDoors, label)
	}

	out.Priorities = nil
	for _, p := range d.Priorities {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out.Priorities = append(out.Priorities, p)
		if len(out.Priorities) == maxPriorities {
			break
		}
	}

	return out
}

// DoorLabelsFromLayout collects every exterior-door label across a layout.
// When a layout is attached to the intake, this list replaces the draft's
// manually entered doors, so an unlabeled door still has to count: it
// contributes the default "Exterior door" label.
func DoorLabelsFromLayout(l *layout.Layout) []string {
	if l == nil {
		return nil
	}
	var labels []string
	for fi := range l.Floors {
		for ri := range l.Floors[fi].Rooms {
			for _, door := range l.Floors[fi].Rooms[ri].Doors {
				if !door.Exterior {
					continue
				}
				label := door.Label
				if label == "" {
					label = "Exterior door"
				}
				labels = append(labels, label)
			}
		}
	}
	return labels
}

package plan

import (
	"reflect"
	"testing"

	"github.com/hearthwatch/planner-core/internal/geometry"
	"github.com/hearthwatch/planner-core/internal/layout"
)

func TestNormalize_Defaults(t *testing.T) {
	got := Normalize(Draft{})

	if got.PropertyType != PropertyHouse {
		t.Errorf("property type = %s, want house", got.PropertyType)
	}
	if got.Floors != 1 {
		t.Errorf("floors = %d, want 1", got.Floors)
	}
	if got.SizeBand != SizeMedium {
		t.Errorf("size band = %s, want medium", got.SizeBand)
	}
	if got.Garage != GarageNone {
		t.Errorf("garage = %s, want none", got.Garage)
	}
	if got.WindowExposure != WindowsNo {
		t.Errorf("window exposure = %s, want no", got.WindowExposure)
	}
}

func TestNormalize_InvalidValuesFallBack(t *testing.T) {
	got := Normalize(Draft{
		PropertyType:   "castle",
		Floors:         -2,
		SizeBand:       "gigantic",
		Garage:         "underground",
		WindowExposure: "maybe",
	})

	want := Draft{
		PropertyType:   PropertyHouse,
		Floors:         1,
		SizeBand:       SizeMedium,
		Garage:         GarageNone,
		WindowExposure: WindowsNo,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %+v, want %+v", got, want)
	}
}

func TestNormalize_DoorsTrimmedAndBlanksDropped(t *testing.T) {
	got := Normalize(Draft{
		ExteriorDoors: []string{"  Front door ", "", "   ", "Back door"},
	})

	want := []string{"Front door", "Back door"}
	if !reflect.DeepEqual(got.ExteriorDoors, want) {
		t.Errorf("doors = %v, want %v", got.ExteriorDoors, want)
	}
}

func TestNormalize_PrioritiesLowercasedAndCapped(t *testing.T) {
	got := Normalize(Draft{
		Priorities: []string{" SECURITY ", "Water", "fire"},
	})

	want := []string{"security", "water"}
	if !reflect.DeepEqual(got.Priorities, want) {
		t.Errorf("priorities = %v, want %v", got.Priorities, want)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := Draft{
		ExteriorDoors: []string{" Front "},
		Priorities:    []string{"SECURITY"},
	}
	Normalize(in)

	if in.ExteriorDoors[0] != " Front " || in.Priorities[0] != "SECURITY" {
		t.Errorf("input mutated: %+v", in)
	}
}

func TestDoorLabelsFromLayout(t *testing.T) {
	l := &layout.Layout{
		ID: "l1",
		Floors: []layout.Floor{
			{
				ID: "f1",
				Rooms: []layout.Room{
					{
						ID:     "r1",
						Bounds: geometry.Rect{Width: 100, Height: 100},
						Doors: []layout.Door{
							{Wall: geometry.WallSouth, Offset: 0.5, Exterior: true, Label: "Front door"},
							{Wall: geometry.WallEast, Offset: 0.5, Exterior: false, Label: "To kitchen"},
							{Wall: geometry.WallNorth, Offset: 0.2, Exterior: true},
						},
					},
				},
			},
			{
				ID: "f2",
				Rooms: []layout.Room{
					{
						ID:     "r2",
						Bounds: geometry.Rect{Width: 100, Height: 100},
						Doors: []layout.Door{
							{Wall: geometry.WallWest, Offset: 0.4, Exterior: true, Label: "Balcony door"},
						},
					},
				},
			},
		},
	}

	got := DoorLabelsFromLayout(l)
	want := []string{"Front door", "Exterior door", "Balcony door"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}

	if labels := DoorLabelsFromLayout(nil); labels != nil {
		t.Errorf("nil layout labels = %v, want nil", labels)
	}
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hearthwatch/planner-core/internal/coverage"
	"github.com/hearthwatch/planner-core/internal/effort"
	"github.com/hearthwatch/planner-core/internal/infrastructure/mqtt"
	"github.com/hearthwatch/planner-core/internal/layout"
)

// handleFloorCoverage computes the coverage overlay for one floor of a
// layout: camera cones, motion zones, per-room states, and uncovered
// exterior doors, plus the report notes derived from them.
func (s *Server) handleFloorCoverage(w http.ResponseWriter, r *http.Request) {
	layoutID := chi.URLParam(r, "layoutID")
	floorID := chi.URLParam(r, "floorID")

	l, err := s.layouts.GetLayout(r.Context(), layoutID)
	if err != nil {
		if errors.Is(err, layout.ErrLayoutNotFound) {
			writeNotFound(w, "layout not found")
			return
		}
		s.logger.Error("failed to get layout", "layout_id", layoutID, "error", err)
		writeInternalError(w, "failed to compute coverage")
		return
	}

	floor := l.FloorByID(floorID)
	if floor == nil {
		writeNotFound(w, "floor not found")
		return
	}

	placements, err := s.layouts.ListPlacementsByFloor(r.Context(), layoutID, floorID)
	if err != nil {
		s.logger.Error("failed to list placements", "layout_id", layoutID, "floor_id", floorID, "error", err)
		writeInternalError(w, "failed to compute coverage")
		return
	}

	start := time.Now()
	overlay := coverage.BuildOverlay(floor, placements)
	notes := coverage.Notes(overlay.Rooms, overlay.DoorExceptions)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.WriteCoverageCompute(layoutID, floorID, elapsed, len(overlay.Rooms))
	}

	s.announceCoverageComputed(layoutID, floorID, overlay)

	writeJSON(w, http.StatusOK, map[string]any{"overlay": overlay, "notes": notes})
}

// handleLayoutSummary returns the device mix summary and coverage notes
// for a whole layout, aggregating room states and door exceptions across
// every floor.
func (s *Server) handleLayoutSummary(w http.ResponseWriter, r *http.Request) {
	layoutID := chi.URLParam(r, "layoutID")

	l, err := s.layouts.GetLayout(r.Context(), layoutID)
	if err != nil {
		if errors.Is(err, layout.ErrLayoutNotFound) {
			writeNotFound(w, "layout not found")
			return
		}
		s.logger.Error("failed to get layout", "layout_id", layoutID, "error", err)
		writeInternalError(w, "failed to build summary")
		return
	}

	placements, err := s.layouts.ListPlacements(r.Context(), layoutID)
	if err != nil {
		s.logger.Error("failed to list placements", "layout_id", layoutID, "error", err)
		writeInternalError(w, "failed to build summary")
		return
	}

	var rooms []coverage.RoomCoverage
	var exceptions []coverage.DoorException
	for i := range l.Floors {
		overlay := coverage.BuildOverlay(&l.Floors[i], placementsForFloor(placements, l.Floors[i].ID))
		rooms = append(rooms, overlay.Rooms...)
		exceptions = append(exceptions, overlay.DoorExceptions...)
	}

	summary := coverage.Summarize(placements)
	notes := coverage.Notes(rooms, exceptions)

	writeJSON(w, http.StatusOK, map[string]any{"summary": summary, "notes": notes})
}

// handleLayoutEffort derives the installation effort estimate from the
// layout's current placements.
func (s *Server) handleLayoutEffort(w http.ResponseWriter, r *http.Request) {
	layoutID := chi.URLParam(r, "layoutID")

	l, err := s.layouts.GetLayout(r.Context(), layoutID)
	if err != nil {
		if errors.Is(err, layout.ErrLayoutNotFound) {
			writeNotFound(w, "layout not found")
			return
		}
		s.logger.Error("failed to get layout", "layout_id", layoutID, "error", err)
		writeInternalError(w, "failed to estimate effort")
		return
	}

	placements, err := s.layouts.ListPlacements(r.Context(), layoutID)
	if err != nil {
		s.logger.Error("failed to list placements", "layout_id", layoutID, "error", err)
		writeInternalError(w, "failed to estimate effort")
		return
	}

	mix := effort.MixFromPlacements(placements)
	estimate := effort.EstimateInstall(mix, len(l.Floors))

	writeJSON(w, http.StatusOK, map[string]any{"mix": mix, "estimate": estimate})
}

// announceCoverageComputed broadcasts a coverage result to editor clients
// and publishes the MQTT event when a broker is configured.
func (s *Server) announceCoverageComputed(layoutID, floorID string, overlay coverage.Overlay) {
	counts := make(map[coverage.RoomState]int, 3)
	for _, room := range overlay.Rooms {
		counts[room.State]++
	}

	if s.hub != nil {
		s.hub.Broadcast(ChannelCoverageComputed, map[string]any{
			"layout_id":    layoutID,
			"floor_id":     floorID,
			"green_rooms":  counts[coverage.StateGreen],
			"yellow_rooms": counts[coverage.StateYellow],
			"red_rooms":    counts[coverage.StateRed],
			"exceptions":   len(overlay.DoorExceptions),
		})
	}

	if s.mqtt != nil {
		event := mqtt.CoverageComputedEvent{
			LayoutID:    layoutID,
			FloorID:     floorID,
			GreenRooms:  counts[coverage.StateGreen],
			YellowRooms: counts[coverage.StateYellow],
			RedRooms:    counts[coverage.StateRed],
			Exceptions:  len(overlay.DoorExceptions),
			Timestamp:   time.Now().UTC(),
		}
		if err := s.mqtt.PublishCoverageComputed(event); err != nil {
			s.logger.Warn("failed to publish coverage event", "layout_id", layoutID, "error", err)
		}
	}
}

// placementsForFloor filters placements to those on the given floor.
func placementsForFloor(placements []layout.Placement, floorID string) []layout.Placement {
	out := make([]layout.Placement, 0, len(placements))
	for i := range placements {
		if placements[i].FloorID == floorID {
			out = append(out, placements[i])
		}
	}
	return out
}

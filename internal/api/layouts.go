package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hearthwatch/planner-core/internal/infrastructure/mqtt"
	"github.com/hearthwatch/planner-core/internal/layout"
)

// handleListLayouts returns summaries of all saved layouts.
func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.layouts.ListLayouts(r.Context())
	if err != nil {
		s.logger.Error("failed to list layouts", "error", err)
		writeInternalError(w, "failed to list layouts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"layouts": summaries, "count": len(summaries)})
}

// handleGetLayout returns a single layout with its floors, rooms, and placements.
func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "layoutID")

	l, err := s.layouts.GetLayout(r.Context(), id)
	if err != nil {
		if errors.Is(err, layout.ErrLayoutNotFound) {
			writeNotFound(w, "layout not found")
			return
		}
		s.logger.Error("failed to get layout", "layout_id", id, "error", err)
		writeInternalError(w, "failed to get layout")
		return
	}

	placements, err := s.layouts.ListPlacements(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to list placements", "layout_id", id, "error", err)
		writeInternalError(w, "failed to get layout")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"layout": l, "placements": placements})
}

// handleCreateLayout creates a new layout.
//
// Missing layout, floor, and room ids are minted server-side so the editor
// can post unsaved documents directly.
func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var l layout.Layout
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	mintLayoutIDs(&l)

	if err := layout.ValidateLayout(&l); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.layouts.CreateLayout(r.Context(), &l); err != nil {
		if errors.Is(err, layout.ErrLayoutExists) {
			writeError(w, http.StatusConflict, ErrCodeConflict, "layout already exists")
			return
		}
		s.logger.Error("failed to create layout", "layout_id", l.ID, "error", err)
		writeInternalError(w, "failed to create layout")
		return
	}

	s.auditLog("create", "layout", l.ID, map[string]any{"name": l.Name, "floors": len(l.Floors)})
	s.announceLayoutSaved(&l)

	writeJSON(w, http.StatusCreated, l)
}

// handleUpdateLayout replaces a layout's metadata, floors, and rooms.
// Placements are replaced separately via PUT /placements.
func (s *Server) handleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "layoutID")

	var l layout.Layout
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	l.ID = id

	mintLayoutIDs(&l)

	if err := layout.ValidateLayout(&l); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.layouts.UpdateLayout(r.Context(), &l); err != nil {
		if errors.Is(err, layout.ErrLayoutNotFound) {
			writeNotFound(w, "layout not found")
			return
		}
		s.logger.Error("failed to update layout", "layout_id", id, "error", err)
		writeInternalError(w, "failed to update layout")
		return
	}

	s.auditLog("update", "layout", l.ID, map[string]any{"name": l.Name, "floors": len(l.Floors)})
	s.announceLayoutSaved(&l)

	writeJSON(w, http.StatusOK, l)
}

// handleDeleteLayout removes a layout and its floors, rooms, and placements.
// Saved plan snapshots are kept: quotes outlive the maps they came from.
func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "layoutID")

	if err := s.layouts.DeleteLayout(r.Context(), id); err != nil {
		if errors.Is(err, layout.ErrLayoutNotFound) {
			writeNotFound(w, "layout not found")
			return
		}
		s.logger.Error("failed to delete layout", "layout_id", id, "error", err)
		writeInternalError(w, "failed to delete layout")
		return
	}

	s.auditLog("delete", "layout", id, nil)

	if s.mqtt != nil {
		if err := s.mqtt.PublishLayoutDeleted(mqtt.LayoutDeletedEvent{LayoutID: id}); err != nil {
			s.logger.Warn("failed to publish layout deleted event", "layout_id", id, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// handleListPlacements returns all placements for a layout, optionally
// filtered to one floor via ?floor_id=.
func (s *Server) handleListPlacements(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "layoutID")

	var placements []layout.Placement
	var err error
	if floorID := r.URL.Query().Get("floor_id"); floorID != "" {
		placements, err = s.layouts.ListPlacementsByFloor(r.Context(), id, floorID)
	} else {
		placements, err = s.layouts.ListPlacements(r.Context(), id)
	}
	if err != nil {
		s.logger.Error("failed to list placements", "layout_id", id, "error", err)
		writeInternalError(w, "failed to list placements")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"placements": placements, "count": len(placements)})
}

// handleReplacePlacements swaps the full placement set for a layout.
// The editor always saves whole documents, so this is the only write path
// for placements.
func (s *Server) handleReplacePlacements(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "layoutID")

	var body struct {
		Placements []layout.Placement `json:"placements"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	l, err := s.layouts.GetLayout(r.Context(), id)
	if err != nil {
		if errors.Is(err, layout.ErrLayoutNotFound) {
			writeNotFound(w, "layout not found")
			return
		}
		s.logger.Error("failed to get layout", "layout_id", id, "error", err)
		writeInternalError(w, "failed to replace placements")
		return
	}

	for i := range body.Placements {
		if body.Placements[i].ID == "" {
			body.Placements[i].ID = "plc-" + uuid.NewString()[:8]
		}
		if body.Placements[i].Provenance == "" {
			body.Placements[i].Provenance = layout.ProvenanceUser
		}
	}

	if err := layout.ValidatePlacements(l, body.Placements); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.layouts.ReplacePlacements(r.Context(), id, body.Placements); err != nil {
		if errors.Is(err, layout.ErrLayoutNotFound) {
			writeNotFound(w, "layout not found")
			return
		}
		s.logger.Error("failed to replace placements", "layout_id", id, "error", err)
		writeInternalError(w, "failed to replace placements")
		return
	}

	s.auditLog("update", "placements", id, map[string]any{"count": len(body.Placements)})
	s.announceLayoutSaved(l)

	writeJSON(w, http.StatusOK, map[string]any{"placements": body.Placements, "count": len(body.Placements)})
}

// announceLayoutSaved broadcasts a layout save to editor clients and
// publishes the MQTT event when a broker is configured.
func (s *Server) announceLayoutSaved(l *layout.Layout) {
	if s.hub != nil {
		s.hub.Broadcast(ChannelLayoutUpdated, map[string]any{
			"layout_id":   l.ID,
			"name":        l.Name,
			"floor_count": len(l.Floors),
		})
	}

	if s.mqtt != nil {
		event := mqtt.LayoutSavedEvent{
			LayoutID:   l.ID,
			Name:       l.Name,
			FloorCount: len(l.Floors),
			Timestamp:  time.Now().UTC(),
		}
		if err := s.mqtt.PublishLayoutSaved(event); err != nil {
			s.logger.Warn("failed to publish layout saved event", "layout_id", l.ID, "error", err)
		}
	}
}

// mintLayoutIDs fills in missing layout, floor, and room ids.
func mintLayoutIDs(l *layout.Layout) {
	if l.ID == "" {
		l.ID = "layout-" + uuid.NewString()[:8]
	}
	for i := range l.Floors {
		if l.Floors[i].ID == "" {
			l.Floors[i].ID = "floor-" + uuid.NewString()[:8]
		}
		for j := range l.Floors[i].Rooms {
			if l.Floors[i].Rooms[j].ID == "" {
				l.Floors[i].Rooms[j].ID = "room-" + uuid.NewString()[:8]
			}
		}
	}
}

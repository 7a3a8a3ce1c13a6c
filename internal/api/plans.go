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
	"github.com/hearthwatch/planner-core/internal/plan"
)

// planRequest is the body for plan building endpoints.
type planRequest struct {
	Tier  plan.Tier  `json:"tier"`
	Draft plan.Draft `json:"draft"`
}

// handleCreatePlan builds a plan for the requested tier and saves it as a
// snapshot. The saved plan is the quote of record: later layout edits do
// not change it.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if !plan.IsValidTier(req.Tier) {
		writeBadRequest(w, "unknown tier: "+string(req.Tier))
		return
	}

	s.buildAndSavePlan(w, r, req.Tier, req.Draft, nil)
}

// handleLayoutPlan builds and saves a plan for a layout. Door labels come
// from the layout's exterior doors, overriding any labels in the draft.
func (s *Server) handleLayoutPlan(w http.ResponseWriter, r *http.Request) {
	layoutID := chi.URLParam(r, "layoutID")

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if !plan.IsValidTier(req.Tier) {
		writeBadRequest(w, "unknown tier: "+string(req.Tier))
		return
	}

	l, err := s.layouts.GetLayout(r.Context(), layoutID)
	if err != nil {
		if errors.Is(err, layout.ErrLayoutNotFound) {
			writeNotFound(w, "layout not found")
			return
		}
		s.logger.Error("failed to get layout", "layout_id", layoutID, "error", err)
		writeInternalError(w, "failed to build plan")
		return
	}

	if labels := plan.DoorLabelsFromLayout(l); len(labels) > 0 {
		req.Draft.ExteriorDoors = labels
	}
	if req.Draft.Floors == 0 {
		req.Draft.Floors = len(l.Floors)
	}

	s.buildAndSavePlan(w, r, req.Tier, req.Draft, &layoutID)
}

// handlePreviewPlan builds a plan without saving it. The response includes
// quote add-ons so the intake wizard can show the full picture before the
// customer commits.
func (s *Server) handlePreviewPlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if !plan.IsValidTier(req.Tier) {
		writeBadRequest(w, "unknown tier: "+string(req.Tier))
		return
	}

	start := time.Now()
	p := plan.Build(req.Draft, req.Tier)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.WritePlanBuild(string(p.Tier), string(p.Status), elapsed)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"plan":          p,
		"quote_add_ons": plan.QuoteAddOns(&p, req.Draft),
	})
}

// handleComparePlans returns the one-line bundle comparison across all
// three tiers for a draft.
func (s *Server) handleComparePlans(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Draft plan.Draft `json:"draft"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	bundles := plan.Bundles(req.Draft)

	writeJSON(w, http.StatusOK, map[string]any{"bundles": bundles, "count": len(bundles)})
}

// handleGetPlan returns a saved plan snapshot.
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "planID")

	saved, err := s.plans.GetPlan(r.Context(), id)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			writeNotFound(w, "plan not found")
			return
		}
		s.logger.Error("failed to get plan", "plan_id", id, "error", err)
		writeInternalError(w, "failed to get plan")
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// handleLayoutPlans lists saved plan snapshots for a layout, newest first.
func (s *Server) handleLayoutPlans(w http.ResponseWriter, r *http.Request) {
	layoutID := chi.URLParam(r, "layoutID")

	plans, err := s.plans.ListPlans(r.Context(), layoutID)
	if err != nil {
		s.logger.Error("failed to list plans", "layout_id", layoutID, "error", err)
		writeInternalError(w, "failed to list plans")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"plans": plans, "count": len(plans)})
}

// buildAndSavePlan runs the engine, persists the snapshot, and fires the
// plan-created side effects.
func (s *Server) buildAndSavePlan(w http.ResponseWriter, r *http.Request, tier plan.Tier, draft plan.Draft, layoutID *string) {
	start := time.Now()
	p := plan.Build(draft, tier)
	elapsed := time.Since(start)

	saved := plan.SavedPlan{
		ID:       "plan-" + uuid.NewString()[:8],
		LayoutID: layoutID,
		Tier:     p.Tier,
		Status:   p.Status,
		Draft:    plan.Normalize(draft),
		Plan:     p,
	}
	if err := s.plans.SavePlan(r.Context(), &saved); err != nil {
		s.logger.Error("failed to save plan", "plan_id", saved.ID, "error", err)
		writeInternalError(w, "failed to save plan")
		return
	}

	if s.metrics != nil {
		s.metrics.WritePlanBuild(string(p.Tier), string(p.Status), elapsed)
	}

	details := map[string]any{"tier": string(p.Tier), "status": string(p.Status)}
	if layoutID != nil {
		details["layout_id"] = *layoutID
	}
	s.auditLog("create", "plan", saved.ID, details)

	if s.hub != nil {
		s.hub.Broadcast(ChannelPlanCreated, map[string]any{
			"plan_id": saved.ID,
			"tier":    string(p.Tier),
			"status":  string(p.Status),
		})
	}

	if s.mqtt != nil {
		event := mqtt.PlanCreatedEvent{
			PlanID:    saved.ID,
			Tier:      string(p.Tier),
			Status:    string(p.Status),
			Timestamp: saved.CreatedAt,
		}
		if layoutID != nil {
			event.LayoutID = *layoutID
		}
		if err := s.mqtt.PublishPlanCreated(event); err != nil {
			s.logger.Warn("failed to publish plan created event", "plan_id", saved.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"saved_plan":    saved,
		"quote_add_ons": plan.QuoteAddOns(&p, draft),
	})
}

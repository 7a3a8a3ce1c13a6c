package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hearthwatch/planner-core/internal/coverage"
	"github.com/hearthwatch/planner-core/internal/layout"
)

// shareClaims carries the layout id inside a signed share token. The token
// grants read-only access to one layout's coverage report, nothing else.
type shareClaims struct {
	jwt.RegisteredClaims
	LayoutID string `json:"layout_id"`
}

// handleCreateShareLink mints a signed, expiring token for a layout's
// coverage report. Anyone holding the token can read the report via
// GET /shared/{token} without further credentials.
func (s *Server) handleCreateShareLink(w http.ResponseWriter, r *http.Request) {
	layoutID := chi.URLParam(r, "layoutID")

	if _, err := s.layouts.GetLayout(r.Context(), layoutID); err != nil {
		if errors.Is(err, layout.ErrLayoutNotFound) {
			writeNotFound(w, "layout not found")
			return
		}
		s.logger.Error("failed to get layout", "layout_id", layoutID, "error", err)
		writeInternalError(w, "failed to create share link")
		return
	}

	now := time.Now().UTC()
	expires := now.Add(time.Duration(s.secCfg.ShareToken.TTLHours) * time.Hour)

	claims := shareClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "hearthwatch",
			Subject:   layoutID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		LayoutID: layoutID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secCfg.ShareToken.Secret))
	if err != nil {
		s.logger.Error("failed to sign share token", "layout_id", layoutID, "error", err)
		writeInternalError(w, "failed to create share link")
		return
	}

	s.auditLog("share", "layout", layoutID, map[string]any{"expires_at": expires.Format(time.RFC3339)})

	writeJSON(w, http.StatusCreated, map[string]any{
		"token":      token,
		"path":       "/api/v1/shared/" + token,
		"expires_at": expires,
	})
}

// handleSharedReport serves the read-only coverage report for a share
// token: the layout, per-floor overlays, device summary, and notes.
func (s *Server) handleSharedReport(w http.ResponseWriter, r *http.Request) {
	tokenStr := chi.URLParam(r, "token")

	layoutID, err := s.parseShareToken(tokenStr)
	if err != nil {
		writeUnauthorized(w, "invalid or expired share token")
		return
	}

	l, err := s.layouts.GetLayout(r.Context(), layoutID)
	if err != nil {
		if errors.Is(err, layout.ErrLayoutNotFound) {
			writeNotFound(w, "layout not found")
			return
		}
		s.logger.Error("failed to get layout", "layout_id", layoutID, "error", err)
		writeInternalError(w, "failed to build shared report")
		return
	}

	placements, err := s.layouts.ListPlacements(r.Context(), layoutID)
	if err != nil {
		s.logger.Error("failed to list placements", "layout_id", layoutID, "error", err)
		writeInternalError(w, "failed to build shared report")
		return
	}

	overlays := make([]coverage.Overlay, 0, len(l.Floors))
	var rooms []coverage.RoomCoverage
	var exceptions []coverage.DoorException
	for i := range l.Floors {
		overlay := coverage.BuildOverlay(&l.Floors[i], placementsForFloor(placements, l.Floors[i].ID))
		overlays = append(overlays, overlay)
		rooms = append(rooms, overlay.Rooms...)
		exceptions = append(exceptions, overlay.DoorExceptions...)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"layout":   l,
		"overlays": overlays,
		"summary":  coverage.Summarize(placements),
		"notes":    coverage.Notes(rooms, exceptions),
	})
}

// parseShareToken validates a share token and returns the layout id it
// grants access to. Only HS256 is accepted.
func (s *Server) parseShareToken(tokenStr string) (string, error) {
	var claims shareClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return []byte(s.secCfg.ShareToken.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("parse share token: %w", err)
	}
	if !token.Valid || claims.LayoutID == "" {
		return "", errors.New("invalid share token")
	}
	return claims.LayoutID, nil
}

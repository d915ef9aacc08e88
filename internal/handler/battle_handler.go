package handler

import (
	"net/http"

	"github.com/freeeve/war-simulator/internal/auth"
	"github.com/freeeve/war-simulator/internal/service"
)

// BattleHandler handles the battle endpoints.
type BattleHandler struct {
	battleSvc *service.BattleService
}

// NewBattleHandler creates a BattleHandler.
func NewBattleHandler(battleSvc *service.BattleService) *BattleHandler {
	return &BattleHandler{battleSvc: battleSvc}
}

// StartBattle handles GET /api/v1/battle/{enemyId}
func (h *BattleHandler) StartBattle(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	result, err := h.battleSvc.Start(r.Context(), userID, r.PathValue("enemyId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AirBattle handles GET /api/v1/battle/{enemyId}/airBattle
func (h *BattleHandler) AirBattle(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	result, err := h.battleSvc.ResolveAir(r.Context(), userID, r.PathValue("enemyId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SurfaceBattle handles GET /api/v1/battle/{enemyId}/surfaceBattle
func (h *BattleHandler) SurfaceBattle(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	result, err := h.battleSvc.ResolveSurface(r.Context(), userID, r.PathValue("enemyId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CurrentSession handles GET /api/v1/battle/session
func (h *BattleHandler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.battleSvc.Session(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

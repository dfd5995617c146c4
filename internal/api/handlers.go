package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"

	"brawler/internal/config"
	"brawler/internal/game"

	"github.com/go-chi/chi/v5"
)

func (h *routerHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"tick":   h.match.Stats()["tick"],
	})
}

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	snap := h.match.GetSnapshot()
	if snap == nil {
		writeError(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.match.Stats())
}

func (h *routerHandlers) handleGetFighter(w http.ResponseWriter, r *http.Request) {
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil || slot < 0 || slot > 1 {
		writeError(w, "slot must be 0 or 1", http.StatusBadRequest)
		return
	}
	snap := h.match.GetSnapshot()
	if snap == nil {
		writeError(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]interface{}{
		"fighter": snap.Fighters[slot],
		"combo":   snap.Combos[slot],
	})
}

type frameDataEntry struct {
	Move string `json:"move"`
	config.FrameTiming
	Damage   float64 `json:"damage,omitempty"`
	Cooldown int     `json:"cooldownFrames,omitempty"`
	Width    float64 `json:"hitboxWidth,omitempty"`
}

func (h *routerHandlers) handleGetFrameData(w http.ResponseWriter, r *http.Request) {
	moves := h.match.Timings().Moves()
	out := make([]frameDataEntry, 0, len(moves))
	for name, ft := range moves {
		e := frameDataEntry{Move: name, FrameTiming: ft}
		if def, ok := h.combat.Moves[name]; ok {
			e.Damage = def.Damage
			e.Cooldown = def.CooldownFrames
			e.Width = def.HitboxWidth
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Move < out[j].Move })
	writeJSON(w, out)
}

func (h *routerHandlers) handleGetArchetypes(w http.ResponseWriter, r *http.Request) {
	names := h.combat.ArchetypeNames()
	out := make([]config.Archetype, 0, len(names))
	for _, n := range names {
		a, _ := h.combat.Archetype(n)
		out = append(out, a)
	}
	writeJSON(w, out)
}

func (h *routerHandlers) handleGetCombos(w http.ResponseWriter, r *http.Request) {
	var announcements []game.Announcement
	if snap := h.match.GetSnapshot(); snap != nil {
		announcements = snap.Announcements
	}
	if announcements == nil {
		announcements = []game.Announcement{}
	}
	writeJSON(w, map[string]interface{}{
		"announcements": announcements,
		"strings":       h.combat.ComboStrings,
	})
}

func (h *routerHandlers) handleGetStandings(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	entries := []game.StandingsEntry{}
	if h.standings != nil {
		entries = append(entries, h.standings.GetTop(limit)...)
	}
	writeJSON(w, entries)
}

func (h *routerHandlers) handleResetMatch(w http.ResponseWriter, r *http.Request) {
	log.Println("🔄 Round reset requested via API")
	h.match.ResetRound()
	writeJSON(w, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("⚠️ encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

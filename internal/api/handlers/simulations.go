package handlers

import (
	"context"
	"delivery-dispatch-service/internal/api/dto"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/metrics"
	"delivery-dispatch-service/internal/ports"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DayRunner replays the delivery day up to a cutoff.
type DayRunner interface {
	ParseCutoff(hhmm string) (time.Time, error)
	RunDay(ctx context.Context, cutoff time.Time) (*domain.Snapshot, error)
	PackageStatus(ctx context.Context, id int, cutoff time.Time) (domain.PackageSnapshot, *domain.Snapshot, error)
	// Fingerprint identifies the day's inputs; cache keys include it.
	Fingerprint() string
}

// SimulationHandler exposes package and truck state at a time of day.
// Runs are serialized because the engine holds the day's mutable state.
type SimulationHandler struct {
	Engine DayRunner
	Cache  ports.SnapshotCache

	mu sync.Mutex
}

// cutoff parses the "at" query parameter (HHMM). Empty means end of day and
// returns a zero time.
func (h *SimulationHandler) cutoff(at string) (time.Time, string, error) {
	at = strings.TrimSpace(at)
	if at == "" {
		return time.Time{}, "eod", nil
	}
	t, err := h.Engine.ParseCutoff(at)
	if err != nil {
		return time.Time{}, "", err
	}
	return t, at, nil
}

func (h *SimulationHandler) cacheKey(at string) string {
	return h.Engine.Fingerprint() + ":" + at
}

func (h *SimulationHandler) cached(ctx context.Context, key string) (*domain.Snapshot, bool) {
	if h.Cache == nil {
		return nil, false
	}
	snap, ok, err := h.Cache.Get(ctx, key)
	if err != nil {
		log.Printf("snapshot cache get failed: key=%s err=%v", key, err)
		return nil, false
	}
	if ok {
		metrics.SimulationRuns.WithLabelValues("cache").Inc()
	}
	return snap, ok
}

func (h *SimulationHandler) store(ctx context.Context, key string, snap *domain.Snapshot) {
	metrics.SimulationRuns.WithLabelValues("engine").Inc()
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Put(ctx, key, snap); err != nil {
		log.Printf("snapshot cache put failed: key=%s err=%v", key, err)
	}
}

// snapshot runs the day up to the "at" query parameter (HHMM, default end of
// day), consulting the cache first.
func (h *SimulationHandler) snapshot(ctx context.Context, at string) (*domain.Snapshot, error) {
	cutoff, label, err := h.cutoff(at)
	if err != nil {
		return nil, err
	}

	key := h.cacheKey(label)
	if snap, ok := h.cached(ctx, key); ok {
		return snap, nil
	}

	h.mu.Lock()
	snap, err := h.Engine.RunDay(ctx, cutoff)
	h.mu.Unlock()
	if err != nil {
		return nil, err
	}

	h.store(ctx, key, snap)
	return snap, nil
}

// Simulate reports every package status and truck distance at ?at=HHMM.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	snap, err := h.snapshot(r.Context(), r.URL.Query().Get("at"))
	if err != nil {
		h.writeRunError(w, r, err)
		return
	}

	res := dto.SimulationResponse{
		RunID:              snap.RunID,
		At:                 snap.At,
		CompletedAt:        snap.CompletedAt,
		TotalDistanceMiles: snap.TotalDistanceMiles,
		Trucks:             make([]dto.TruckResponse, 0, len(snap.Trucks)),
		Packages:           make([]dto.PackageResponse, 0, len(snap.Packages)),
	}
	for _, t := range snap.Trucks {
		res.Trucks = append(res.Trucks, dto.TruckResponse{TruckID: t.TruckID, DistanceMiles: t.DistanceMiles})
	}
	for _, p := range snap.Packages {
		res.Packages = append(res.Packages, dto.PackageResponse{
			PackageID: p.PackageID,
			Address:   p.Address,
			Deadline:  p.Deadline,
			Status:    p.Status,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// PackageStatus reports a single package's status at ?at=HHMM.
func (h *SimulationHandler) PackageStatus(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "package id must be a positive integer")
		return
	}

	cutoff, label, err := h.cutoff(r.URL.Query().Get("at"))
	if err != nil {
		h.writeRunError(w, r, err)
		return
	}

	key := h.cacheKey(label)
	var p domain.PackageSnapshot
	snap, ok := h.cached(r.Context(), key)
	if ok {
		if p, ok = snap.Package(id); !ok {
			writeError(w, r, http.StatusNotFound, "package not found")
			return
		}
	} else {
		h.mu.Lock()
		p, snap, err = h.Engine.PackageStatus(r.Context(), id, cutoff)
		h.mu.Unlock()
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "package not found")
			return
		}
		if err != nil {
			h.writeRunError(w, r, err)
			return
		}
		h.store(r.Context(), key, snap)
	}

	writeJSON(w, r, http.StatusOK, dto.PackageStatusResponse{
		PackageID: p.PackageID,
		Address:   p.Address,
		Deadline:  p.Deadline,
		Status:    p.Status,
		At:        snap.At,
	})
}

func (h *SimulationHandler) writeRunError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrInvalidTimeInput) {
		writeError(w, r, http.StatusBadRequest, "at must be an HHMM time after the start of the day")
		return
	}
	log.Printf("simulation failed: %v", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

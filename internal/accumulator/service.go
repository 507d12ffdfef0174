// Package accumulator exposes persisted accumulators over HTTP.
package accumulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aevon-lab/primstats/internal/core/storage"
	"github.com/aevon-lab/primstats/internal/core/summary"
	"github.com/aevon-lab/primstats/internal/reduce"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrInvalidRequest marks request validation errors that should return HTTP 400.
var ErrInvalidRequest = errors.New("invalid accumulator request")

// CreateRequest creates an empty accumulator, or a pre-seeded one when Seed
// is set. Seed.Kind may be left empty; if set it must equal Kind. A seed is
// count, sum, min and max only: compensation and simple_sum are ignored.
type CreateRequest struct {
	Kind summary.Kind      `json:"kind"`
	Seed *summary.Snapshot `json:"seed,omitempty"`
}

// AccumulatorResponse is one accumulator as returned by the API.
type AccumulatorResponse struct {
	ID string `json:"id"`
	summary.Report
}

// Service owns the read-modify-write cycle on stored accumulators. Every
// mutation holds mu, so a stored accumulator only ever has one writer.
type Service struct {
	mu               sync.Mutex
	store            storage.SnapshotStore
	opts             reduce.Options
	maxBodySizeBytes int
	newID            func() string
}

func NewService(store storage.SnapshotStore, opts reduce.Options, maxBodySizeMB int) *Service {
	if store == nil {
		panic("accumulator: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1
	}
	return &Service{
		store:            store,
		opts:             opts,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		newID:            uuid.NewString,
	}
}

// RegisterRoutes registers the accumulator routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/v1/accumulators")
	g.POST("", s.CreateHandler)
	g.GET("", s.ListHandler)
	g.GET("/:id", s.GetHandler)
	g.POST("/:id/values", s.RecordHandler)
	g.POST("/:id/merge", s.MergeHandler)
	g.DELETE("/:id", s.DeleteHandler)
}

// Create stores a new accumulator under a fresh id.
func (s *Service) Create(ctx context.Context, req CreateRequest) (AccumulatorResponse, error) {
	if !summary.ValidKind(req.Kind) {
		return AccumulatorResponse{}, fmt.Errorf("%w: %q", summary.ErrUnknownKind, req.Kind)
	}

	var (
		acc summary.Accumulator
		err error
	)
	if req.Seed != nil {
		seed := *req.Seed
		if seed.Kind != "" && seed.Kind != req.Kind {
			return AccumulatorResponse{}, fmt.Errorf("%w: seed kind %q does not match %q", ErrInvalidRequest, seed.Kind, req.Kind)
		}
		seed.Kind = req.Kind
		seed.Compensation, seed.SimpleSum = "", ""
		acc, err = summary.Restore(seed)
	} else {
		acc, err = summary.New(req.Kind)
	}
	if err != nil {
		return AccumulatorResponse{}, err
	}

	id := s.newID()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, id, acc.Snapshot()); err != nil {
		return AccumulatorResponse{}, err
	}

	slog.Info("[Accumulator] Created", "id", id, "kind", req.Kind, "seeded", req.Seed != nil)
	return AccumulatorResponse{ID: id, Report: acc.Report()}, nil
}

// Get returns the current state of one accumulator.
func (s *Service) Get(ctx context.Context, id string) (AccumulatorResponse, error) {
	acc, err := s.load(ctx, id)
	if err != nil {
		return AccumulatorResponse{}, err
	}
	return AccumulatorResponse{ID: id, Report: acc.Report()}, nil
}

// List returns every stored accumulator ordered by id.
func (s *Service) List(ctx context.Context) ([]AccumulatorResponse, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]AccumulatorResponse, 0, len(ids))
	for _, id := range ids {
		resp, err := s.Get(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted between List and Get
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Record parses tokens, folds them in parallel and merges the result into
// the stored accumulator. Nothing is stored if any token is invalid.
func (s *Service) Record(ctx context.Context, id string, tokens []string) (AccumulatorResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.update(ctx, id, func(acc summary.Accumulator) error {
		batch, err := reduce.ReduceTokens(ctx, acc.Kind(), tokens, s.opts)
		if err != nil {
			return err
		}
		return acc.Merge(batch)
	})
	if err != nil {
		return AccumulatorResponse{}, err
	}

	slog.Debug("[Accumulator] Recorded values", "id", id, "values", len(tokens), "count", acc.Count())
	return AccumulatorResponse{ID: id, Report: acc.Report()}, nil
}

// Merge folds the accumulator stored under srcID into the one under dstID.
// The source is left unchanged.
func (s *Service) Merge(ctx context.Context, dstID, srcID string) (AccumulatorResponse, error) {
	if srcID == "" {
		return AccumulatorResponse{}, fmt.Errorf("%w: source_id is required", ErrInvalidRequest)
	}
	if srcID == dstID {
		return AccumulatorResponse{}, fmt.Errorf("%w: cannot merge an accumulator into itself", ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.load(ctx, srcID)
	if err != nil {
		return AccumulatorResponse{}, err
	}
	dst, err := s.update(ctx, dstID, func(dst summary.Accumulator) error {
		return dst.Merge(src)
	})
	if err != nil {
		return AccumulatorResponse{}, err
	}

	slog.Info("[Accumulator] Merged", "dst", dstID, "src", srcID, "count", dst.Count())
	return AccumulatorResponse{ID: dstID, Report: dst.Report()}, nil
}

// Delete removes one accumulator.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("[Accumulator] Deleted", "id", id)
	return nil
}

// update applies fn to the accumulator stored under id and saves the result.
// Stores that implement storage.Updater hold their own lock for the whole
// read-modify-write; the others rely on s.mu.
func (s *Service) update(ctx context.Context, id string, fn func(acc summary.Accumulator) error) (summary.Accumulator, error) {
	u, ok := s.store.(storage.Updater)
	if !ok {
		acc, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(acc); err != nil {
			return nil, err
		}
		if err := s.store.Save(ctx, id, acc.Snapshot()); err != nil {
			return nil, err
		}
		return acc, nil
	}

	var out summary.Accumulator
	err := u.Update(ctx, id, func(snap summary.Snapshot) (summary.Snapshot, error) {
		acc, err := restoreStored(id, snap)
		if err != nil {
			return summary.Snapshot{}, err
		}
		if err := fn(acc); err != nil {
			return summary.Snapshot{}, err
		}
		out = acc
		return acc.Snapshot(), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) load(ctx context.Context, id string) (summary.Accumulator, error) {
	snap, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return restoreStored(id, snap)
}

// restoreStored rebuilds a stored accumulator. A snapshot that no longer
// restores is a server-side fault, so its validation error is not wrapped.
func restoreStored(id string, snap summary.Snapshot) (summary.Accumulator, error) {
	acc, err := summary.Restore(snap)
	if err != nil {
		slog.Error("[Accumulator] Stored snapshot is corrupt", "id", id, "error", err)
		return nil, fmt.Errorf("stored accumulator %s is corrupt: %v", id, err)
	}
	return acc, nil
}

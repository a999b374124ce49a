package repository

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iliyamo/bookshop/internal/model"
)

// ReviewRepository is the storage contract for book reviews. The store
// owns ID assignment and guarantees at most one review per
// (ISBN, Username) pair.
type ReviewRepository interface {
	ListByISBN(ctx context.Context, isbn string) ([]model.Review, error)
	GetByID(ctx context.Context, id uint64) (model.Review, error)
	Find(ctx context.Context, isbn, username string) (model.Review, error)
	Insert(ctx context.Context, rv model.Review) (model.Review, error)
	Update(ctx context.Context, rv model.Review) (model.Review, error)
	Upsert(ctx context.Context, rv model.Review) (stored model.Review, created bool, err error)
	Delete(ctx context.Context, isbn, username string) (model.Review, error)
}

type reviewKey struct {
	isbn     string
	username string
}

// MemoryReviewRepo keeps reviews in process memory keyed by ID, with an
// index on (ISBN, Username).
type MemoryReviewRepo struct {
	mu     sync.RWMutex
	nextID atomic.Uint64
	byID   map[uint64]model.Review
	byKey  map[reviewKey]uint64
	now    func() time.Time
}

var _ ReviewRepository = (*MemoryReviewRepo)(nil)

func NewMemoryReviewRepo() *MemoryReviewRepo {
	return &MemoryReviewRepo{
		byID:  make(map[uint64]model.Review),
		byKey: make(map[reviewKey]uint64),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ListByISBN returns the reviews of isbn in insertion order. An empty
// slice is returned when there are none.
func (r *MemoryReviewRepo) ListByISBN(ctx context.Context, isbn string) ([]model.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]model.Review, 0)
	for _, rv := range r.byID {
		if rv.ISBN == isbn {
			out = append(out, rv)
		}
	}
	r.mu.RUnlock()
	// IDs are assigned monotonically so ID order is insertion order.
	slices.SortFunc(out, func(a, b model.Review) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

// GetByID fetches a review by id.
func (r *MemoryReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	if err := ctx.Err(); err != nil {
		return model.Review{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rv, ok := r.byID[id]
	if !ok {
		return model.Review{}, ErrReviewNotFound
	}
	return rv, nil
}

// Find returns the review username wrote for isbn.
func (r *MemoryReviewRepo) Find(ctx context.Context, isbn, username string) (model.Review, error) {
	if err := ctx.Err(); err != nil {
		return model.Review{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byKey[reviewKey{isbn, username}]
	if !ok {
		return model.Review{}, ErrReviewNotFound
	}
	return r.byID[id], nil
}

// Insert appends a new review with a fresh ID and date. If the pair
// already has a review the existing one is returned untouched together
// with ErrConflict.
func (r *MemoryReviewRepo) Insert(ctx context.Context, rv model.Review) (model.Review, error) {
	if err := ctx.Err(); err != nil {
		return model.Review{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byKey[reviewKey{rv.ISBN, rv.Username}]; ok {
		return r.byID[id], ErrConflict
	}
	return r.insertLocked(rv), nil
}

// Update overwrites Text, Rating and Date of the review with rv.ID.
func (r *MemoryReviewRepo) Update(ctx context.Context, rv model.Review) (model.Review, error) {
	if err := ctx.Err(); err != nil {
		return model.Review{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[rv.ID]
	if !ok {
		return model.Review{}, ErrReviewNotFound
	}
	return r.updateLocked(cur, rv), nil
}

// Upsert updates the review of (rv.ISBN, rv.Username) in place when one
// exists, otherwise inserts it. created reports which branch was taken.
func (r *MemoryReviewRepo) Upsert(ctx context.Context, rv model.Review) (model.Review, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Review{}, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byKey[reviewKey{rv.ISBN, rv.Username}]; ok {
		return r.updateLocked(r.byID[id], rv), false, nil
	}
	return r.insertLocked(rv), true, nil
}

// Delete removes the review username wrote for isbn and returns it.
func (r *MemoryReviewRepo) Delete(ctx context.Context, isbn, username string) (model.Review, error) {
	if err := ctx.Err(); err != nil {
		return model.Review{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := reviewKey{isbn, username}
	id, ok := r.byKey[k]
	if !ok {
		return model.Review{}, ErrReviewNotFound
	}
	rv := r.byID[id]
	delete(r.byKey, k)
	delete(r.byID, id)
	return rv, nil
}

func (r *MemoryReviewRepo) insertLocked(rv model.Review) model.Review {
	rv.ID = r.nextID.Add(1)
	rv.Date = r.now()
	r.byID[rv.ID] = rv
	r.byKey[reviewKey{rv.ISBN, rv.Username}] = rv.ID
	return rv
}

func (r *MemoryReviewRepo) updateLocked(cur, rv model.Review) model.Review {
	cur.Text = rv.Text
	cur.Rating = rv.Rating
	cur.Date = r.now()
	r.byID[cur.ID] = cur
	return cur
}

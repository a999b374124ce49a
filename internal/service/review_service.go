package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/iliyamo/bookshop/internal/model"
	q "github.com/iliyamo/bookshop/internal/queue"
	"github.com/iliyamo/bookshop/internal/repository"
)

// Messages returned to clients by ReviewService.
const (
	MsgNoReviews            = "No reviews found for this book"
	MsgReviewFieldsRequired = "Review and rating are required"
	MsgRatingOutOfRange     = "Rating must be between 1 and 5"
	MsgReviewNotFound       = "Review not found"
	publishTimeout          = 5 * time.Second
)

// UpsertKind tells whether UpsertReview created or updated a review.
type UpsertKind int

const (
	Created UpsertKind = iota + 1
	Updated
)

func (k UpsertKind) String() string {
	switch k {
	case Created:
		return "created"
	case Updated:
		return "updated"
	}
	return "unknown"
}

// UpsertResult is the outcome of UpsertReview.
type UpsertResult struct {
	Kind   UpsertKind
	Review model.Review
}

// ReviewService enforces the review rules: one review per user per book,
// rating within [model.MinRating, model.MaxRating], and an authenticated
// identity for every write.
type ReviewService struct {
	reviews   repository.ReviewRepository
	catalog   Catalog
	publisher EventPublisher
	logger    *slog.Logger
}

// NewReviewService wires a ReviewService. A nil publisher disables events.
func NewReviewService(reviews repository.ReviewRepository, catalog Catalog, publisher EventPublisher, logger *slog.Logger) *ReviewService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewService{reviews: reviews, catalog: catalog, publisher: publisher, logger: logger}
}

// ListReviews returns the reviews for isbn in insertion order. No reviews
// is reported as ErrNotFound, whether or not the book exists.
func (s *ReviewService) ListReviews(ctx context.Context, isbn string) ([]model.Review, error) {
	list, err := s.reviews.ListByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, newError(ErrNotFound, MsgNoReviews)
	}
	return list, nil
}

// UpsertReview stores the caller's review of isbn. A second submission by the
// same user overwrites text, rating and date in place.
func (s *ReviewService) UpsertReview(ctx context.Context, isbn string, who model.Identity, text string, rating int) (UpsertResult, error) {
	if text == "" || rating == 0 {
		return UpsertResult{}, newError(ErrValidation, MsgReviewFieldsRequired)
	}
	if rating < model.MinRating || rating > model.MaxRating {
		return UpsertResult{}, newError(ErrValidation, MsgRatingOutOfRange)
	}
	if who.Username == "" {
		return UpsertResult{}, newError(ErrAuth, MsgTokenRequired)
	}
	if _, err := s.catalog.GetByISBN(ctx, isbn); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return UpsertResult{}, newError(ErrNotFound, MsgBookNotFound)
		}
		return UpsertResult{}, err
	}

	stored, created, err := s.reviews.Upsert(ctx, model.Review{ISBN: isbn, Username: who.Username, Text: text, Rating: rating})
	if err != nil {
		return UpsertResult{}, err
	}
	res := UpsertResult{Kind: Updated, Review: stored}
	action := q.ActionUpdated
	if created {
		res.Kind = Created
		action = q.ActionCreated
	}
	s.publish(q.ReviewEvent{
		Action:     action,
		ReviewID:   stored.ID,
		ISBN:       stored.ISBN,
		Username:   stored.Username,
		Rating:     stored.Rating,
		OccurredAt: stored.Date.Format(time.RFC3339),
	})
	return res, nil
}

// DeleteReview removes the caller's review of isbn.
func (s *ReviewService) DeleteReview(ctx context.Context, isbn string, who model.Identity) (model.DeletedReviewRef, error) {
	if who.Username == "" {
		return model.DeletedReviewRef{}, newError(ErrAuth, MsgTokenRequired)
	}
	rv, err := s.reviews.Delete(ctx, isbn, who.Username)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return model.DeletedReviewRef{}, newError(ErrNotFound, MsgReviewNotFound)
		}
		return model.DeletedReviewRef{}, err
	}
	s.publish(q.ReviewEvent{
		Action:     q.ActionDeleted,
		ReviewID:   rv.ID,
		ISBN:       rv.ISBN,
		Username:   rv.Username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return model.DeletedReviewRef{ID: rv.ID, ISBN: rv.ISBN, Username: rv.Username}, nil
}

// publish hands ev to the publisher off the request path. Failures are
// logged only.
func (s *ReviewService) publish(ev q.ReviewEvent) {
	if _, ok := s.publisher.(NopPublisher); ok {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.publisher.PublishReviewEvent(ctx, ev); err != nil {
			s.logger.Warn("review event not published", "action", ev.Action, "review_id", ev.ReviewID, "err", err)
		}
	}()
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bookshop/internal/middleware"
	"github.com/iliyamo/bookshop/internal/service"
)

// ReviewHandler exposes review listing (public) and review writes
// (behind middleware.JWTAuth).
type ReviewHandler struct {
	Reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	if reviews == nil {
		panic("nil review service passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: reviews}
}

type reviewReq struct {
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

// ListReviews handles GET /api/reviews/:isbn. A book without reviews
// answers 404.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	isbn := c.Param("isbn")
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Reviews.ListReviews(ctx, isbn)
	if err != nil {
		return respondError(c, err, "Failed to retrieve reviews")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "isbn": isbn, "count": len(list), "reviews": list})
}

// PutReview handles POST /api/reviews/:isbn. The first submission by a
// user answers 201, later ones update the same review and answer 200.
func (h *ReviewHandler) PutReview(c echo.Context) error {
	who, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": service.MsgTokenRequired})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	res, err := h.Reviews.UpsertReview(ctx, c.Param("isbn"), who, req.Review, req.Rating)
	if err != nil {
		return respondError(c, err, "Failed to add/modify review")
	}
	status, msg := http.StatusOK, "Review updated successfully"
	if res.Kind == service.Created {
		status, msg = http.StatusCreated, "Review added successfully"
	}
	return c.JSON(status, echo.Map{
		"success": true,
		"message": msg,
		"created": res.Kind == service.Created,
		"review":  res.Review,
	})
}

// DeleteReview handles DELETE /api/reviews/:isbn for the caller's own review.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	who, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": service.MsgTokenRequired})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	ref, err := h.Reviews.DeleteReview(ctx, c.Param("isbn"), who)
	if err != nil {
		return respondError(c, err, "Failed to delete review")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"message":       "Review deleted successfully",
		"deletedReview": ref,
	})
}

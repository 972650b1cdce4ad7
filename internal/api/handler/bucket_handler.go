package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/admin-api/internal/core/domain"
	"github.com/staffdesk/admin-api/internal/core/ports"
	"github.com/staffdesk/admin-api/internal/reqstate"
)

// BucketHandler handles storage bucket provisioning. Creation runs through
// a mutation guard so a double-submitted form cannot start two provisioning
// attempts at once.
type BucketHandler struct {
	create *reqstate.Mutation[string, struct{}]
}

func NewBucketHandler(store ports.ObjectStore) *BucketHandler {
	return &BucketHandler{
		create: reqstate.NewMutation(func(ctx context.Context, name string) (struct{}, error) {
			return struct{}{}, store.CreateBucket(ctx, name)
		}),
	}
}

// Create handles POST /v1/buckets.
//
// @Summary      Create a storage bucket
// @Tags         buckets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBucketRequest  true  "Bucket name"
// @Success      201   {object}  createBucketResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/buckets [post]
func (h *BucketHandler) Create(c echo.Context) error {
	if _, _, err := ctxActor(c); err != nil {
		return err
	}

	var req createBucketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if _, err := h.create.Dispatch(c.Request().Context(), req.Name); err != nil {
		if errors.Is(err, reqstate.ErrBusy) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "bucket creation already in progress"})
		}
		if errors.Is(err, domain.ErrBucketExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "bucket already exists"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, createBucketResponse{Name: req.Name})
}

package kafka

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
)

// FulfillmentHandler maps shipping-system events onto order status
// transitions, through the same workflow the admin endpoint uses, so
// the transition rules and the post-commit notifications apply equally.
type FulfillmentHandler struct {
	orders *usecase.OrderService
	log    *slog.Logger
}

func NewFulfillmentHandler(orders *usecase.OrderService, log *slog.Logger) *FulfillmentHandler {
	return &FulfillmentHandler{orders: orders, log: log}
}

func (h *FulfillmentHandler) Handle(ctx context.Context, ev FulfillmentEvent) error {
	status := entity.OrderStatus(ev.Status)
	_, err := h.orders.UpdateStatus(ctx, ev.OrderID, status)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidTransition):
		// Business rejections are final; retrying cannot fix them.
		h.log.Warn("fulfillment event rejected", "order_id", ev.OrderID, "status", ev.Status, "error", err)
		return nil
	default:
		return err
	}
}

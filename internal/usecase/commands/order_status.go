package commands

//go:generate go run go.uber.org/mock/mockgen -source=order_status.go -destination=../../testutil/mock/commands/order_status.go -package=commandsmock

import (
	"context"

	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/infra"
	"storefront-sync/internal/pkg/clock"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/shared"

	"github.com/google/uuid"
)

type UpdateFulfillmentRequest struct {
	Status         string
	TrackingNumber string
	Notes          string
}

type OrderStatusCommands interface {
	UpdateFulfillment(ctx context.Context, orderID uuid.UUID, req UpdateFulfillmentRequest) (*order.Order, error)
}

type orderStatusUseCaseImpl struct {
	orders shared.OrderRepository
	clock  clock.Clock
}

func NewOrderStatusUseCase(orders shared.OrderRepository, clk clock.Clock) OrderStatusCommands {
	return &orderStatusUseCaseImpl{orders: orders, clock: clk}
}

func (uc *orderStatusUseCaseImpl) UpdateFulfillment(ctx context.Context, orderID uuid.UUID, req UpdateFulfillmentRequest) (*order.Order, error) {
	status, err := order.NewFulfillmentStatus(req.Status)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidFulfillmentStatus)
	}

	updated, err := uc.orders.UpdateFulfillment(ctx, orderID, func(o *order.Order) error {
		return o.UpdateFulfillment(status, req.TrackingNumber, req.Notes, uc.clock.Now())
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrOrderNotFound)
		}
		return nil, err
	}
	return updated, nil
}

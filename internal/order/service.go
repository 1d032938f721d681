package order

import (
	"context"
	"strconv"

	"storefront-be/internal/access"
	"storefront-be/internal/apperr"
	"storefront-be/internal/events"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultTopic = "orders.created"

type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error)
	GetOrders(ctx context.Context, status *Status, limit, page *int32) ([]*Order, error)
	GetOrder(ctx context.Context, id int64) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, input UpdateOrderInput) (*Order, error)
	GetAdminOrders(ctx context.Context, limit, page *int32) ([]*AdminOrder, error)
}

type service struct {
	repo      Repository
	publisher events.Publisher
	metrics   *metrics.Registry
	topic     string
}

func NewService(repo Repository, publisher events.Publisher, reg *metrics.Registry, topic string) Service {
	if publisher == nil {
		publisher = events.NewLogPublisher()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	if topic == "" {
		topic = DefaultTopic
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		metrics:   reg,
		topic:     topic,
	}
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
	)

	caller, err := access.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	cartID, err := uuid.Parse(input.CartID)
	if err != nil {
		s.metrics.PlacementFailures.Inc()
		return nil, ErrInvalidCartID
	}

	timer := metrics.StartTimer()
	o, err := s.repo.PlaceOrder(ctx, cartID, caller.UserID)
	if err != nil {
		s.metrics.PlacementFailures.Inc()
		log.Warn("place order failed", zap.String("cart_id", cartID.String()), zap.Error(err))
		return nil, err
	}
	s.metrics.OrdersPlaced.Inc()
	s.metrics.ObservePlacement(timer.Duration())

	applyTotals(o)
	s.publishCreated(ctx, o)

	return o, nil
}

// publishCreated runs after commit; a failed publish never undoes the order.
func (s *service) publishCreated(ctx context.Context, o *Order) {
	event := events.OrderCreated{
		Type:       events.OrderCreatedType,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		UserID:     o.UserID,
		Total:      o.TotalPrice,
		ItemCount:  len(o.Items),
		CreatedAt:  o.CreatedAt,
	}

	key := strconv.FormatInt(o.ID, 10)
	if err := s.publisher.PublishEvent(ctx, s.topic, key, event); err != nil {
		s.metrics.EventsFailed.Inc()
		logger.FromCtx(ctx).Error("publish order created failed",
			zap.String("topic", s.topic),
			zap.Int64("order_id", o.ID),
			zap.Error(err),
		)
		return
	}
	s.metrics.EventsPublished.Inc()
}

// GetOrders lists every order for staff and only the caller's own orders otherwise.
func (s *service) GetOrders(ctx context.Context, status *Status, limit, page *int32) ([]*Order, error) {
	caller, err := access.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if status != nil && !status.Valid() {
		return nil, ErrInvalidStatus
	}

	opts := ListOptions{Status: status, Limit: limit, Page: page}
	if !caller.IsStaff {
		opts.UserID = &caller.UserID
	}

	orders, err := s.repo.GetOrders(ctx, opts)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		applyTotals(o)
	}
	return orders, nil
}

// GetUnpaidOrders is the default-filtered listing of orders awaiting payment.
func GetUnpaidOrders(ctx context.Context, s Service, limit, page *int32) ([]*Order, error) {
	unpaid := StatusUnpaid
	return s.GetOrders(ctx, &unpaid, limit, page)
}

func (s *service) GetOrder(ctx context.Context, id int64) (*Order, error) {
	if _, err := access.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}

	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// other customers' orders are reported as missing rather than forbidden
	if _, err := access.RequireOwnerOrStaff(ctx, o.UserID); err != nil {
		if apperr.IsForbidden(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	applyTotals(o)
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, input UpdateOrderInput) (*Order, error) {
	if _, err := access.RequireStaff(ctx); err != nil {
		return nil, err
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("layer", "service"),
		zap.Int64("order_id", id),
		zap.String("status", string(input.Status)),
	)
	return s.GetOrder(ctx, id)
}

func (s *service) GetAdminOrders(ctx context.Context, limit, page *int32) ([]*AdminOrder, error) {
	if _, err := access.RequireStaff(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetAdminOrders(ctx, limit, page)
}

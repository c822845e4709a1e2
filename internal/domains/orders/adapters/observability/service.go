package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/foodorder/go-gin-services/internal/domains/orders/domain"
	ordersports "github.com/foodorder/go-gin-services/internal/domains/orders/ports"
)

const tracerName = "github.com/foodorder/go-gin-services/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(
			attribute.String("order.user_id", input.UserID),
			attribute.String("order.menu_item_id", input.MenuItemID),
			attribute.Int("order.quantity", input.Quantity)))
	defer span.End()

	s.logInfo(ctx, "placing order",
		slog.String("user_id", input.UserID), slog.String("menu_item_id", input.MenuItemID))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("user_id", input.UserID))
	}
	s.metrics.recordPlaced(ctx, result.Status)
	s.logInfo(ctx, "order placed", slog.String("order_id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order_id", id))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, input ordersports.ListOrdersInput) (*ordersports.OrderPage, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders",
		trace.WithAttributes(attribute.Int("page", input.Page), attribute.Int("limit", input.Limit)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int64("orders.total", result.TotalItems))
	return result, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListByUser", trace.WithAttributes(attribute.String("order.user_id", userID)))
	defer span.End()

	result, err := s.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list user orders", slog.String("user_id", userID))
	}
	return result, nil
}

func (s *Service) ListByStatus(ctx context.Context, status string) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListByStatus", trace.WithAttributes(attribute.String("order.status", status)))
	defer span.End()

	result, err := s.inner.ListByStatus(ctx, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders by status", slog.String("status", status))
	}
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateStatus",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("order.status", status)))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.String("order_id", id), slog.String("status", status))
	result, err := s.inner.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.String("order_id", id))
	}
	s.metrics.recordStatusChange(ctx, result.Status)
	return result, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int, totalPrice float64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateQuantity",
		trace.WithAttributes(attribute.String("order.id", id), attribute.Int("order.quantity", quantity)))
	defer span.End()

	s.logInfo(ctx, "updating order quantity", slog.String("order_id", id), slog.Int("quantity", quantity))
	result, err := s.inner.UpdateQuantity(ctx, id, quantity, totalPrice)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order quantity", slog.String("order_id", id))
	}
	return result, nil
}

func (s *Service) BulkUpdateStatus(ctx context.Context, ids []string, status string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.BulkUpdateStatus",
		trace.WithAttributes(attribute.Int("order.ids", len(ids)), attribute.String("order.status", status)))
	defer span.End()

	s.logInfo(ctx, "bulk updating order status", slog.Int("ids", len(ids)), slog.String("status", status))
	updated, err := s.inner.BulkUpdateStatus(ctx, ids, status)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to bulk update orders", slog.String("status", status))
	}
	span.SetAttributes(attribute.Int64("order.updated_count", updated))
	s.logInfo(ctx, "orders bulk updated", slog.Int64("updated_count", updated))
	return updated, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.DeleteOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order_id", id))
	if err := s.inner.DeleteOrder(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order_id", id))
	}
	s.metrics.recordDeleted(ctx)
	return nil
}

func (s *Service) Stats(ctx context.Context) (*ordersports.Stats, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Stats")
	defer span.End()

	result, err := s.inner.Stats(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to aggregate order stats")
	}
	span.SetAttributes(attribute.Int64("orders.total", result.TotalOrders))
	return result, nil
}

func (s *Service) UserStats(ctx context.Context, userID string) (*ordersports.UserStats, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UserStats", trace.WithAttributes(attribute.String("order.user_id", userID)))
	defer span.End()

	result, err := s.inner.UserStats(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to aggregate user stats", slog.String("user_id", userID))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	ordersPlaced  metric.Int64Counter
	statusChanges metric.Int64Counter
	ordersDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	changes, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Number of order status transitions"))
	deleted, _ := m.Int64Counter("orders.service.orders_deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{ordersPlaced: placed, statusChanges: changes, ordersDeleted: deleted}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, status ordersdomain.Status) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordStatusChange(ctx context.Context, status ordersdomain.Status) {
	if m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.ordersDeleted != nil {
		m.ordersDeleted.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)

package cmd

import (
	"log/slog"

	"hawkerflow/internal/adapters/out/postgres"
	"hawkerflow/internal/core/application/usecases/commands"
	"hawkerflow/internal/core/application/usecases/queries"
	"hawkerflow/internal/core/ports"
	"hawkerflow/internal/pkg/clock"

	"gorm.io/gorm"
)

// Dependencies are the outbound adapters the handlers are built on.
type Dependencies struct {
	Payment   ports.PaymentGateway
	Publisher ports.EventPublisher
	Notifier  ports.Notifier
	Clock     clock.Clock
	Logger    *slog.Logger
}

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	deps       Dependencies
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, deps Dependencies) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		deps:       deps,
	}
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() *commands.SubmitOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
	h := commands.NewSubmitOrderCommandHandler(
		f, c.deps.Payment, c.deps.Publisher, c.deps.Clock, c.config.PaymentTimeout, c.deps.Logger,
	)
	return &h
}

func (c *CompositionRoot) CreateFanOutOrderCommandHandler() *commands.FanOutOrderCommandHandler {
	h := commands.NewFanOutOrderCommandHandler(c.fulfillmentUoWFactory(), c.deps.Clock, c.deps.Logger)
	return &h
}

func (c *CompositionRoot) CreateCompleteDishCommandHandler() *commands.CompleteDishCommandHandler {
	h := commands.NewCompleteDishCommandHandler(
		c.fulfillmentUoWFactory(), c.deps.Publisher, c.deps.Clock, c.deps.Logger,
	)
	return &h
}

func (c *CompositionRoot) CreateSweepStallsCommandHandler() *commands.SweepStallsCommandHandler {
	h := commands.NewSweepStallsCommandHandler(c.fulfillmentUoWFactory(), c.deps.Logger)
	return &h
}

func (c *CompositionRoot) CreateNotifyCustomerCommandHandler() *commands.NotifyCustomerCommandHandler {
	h := commands.NewNotifyCustomerCommandHandler(c.deps.Notifier)
	return &h
}

func (c *CompositionRoot) CreateRecordActivityCommandHandler() *commands.RecordActivityCommandHandler {
	var f commands.ActivityUoWFactory = FuncActivityUoWFactory(func() commands.ActivityUoW {
		return c.uowFactory.CreateGorm()
	})
	h := commands.NewRecordActivityCommandHandler(f, c.deps.Logger)
	return &h
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStallSummaryQueryHandler() queries.GetStallSummaryQueryHandler {
	return queries.NewGetStallSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStallOrdersQueryHandler() queries.GetStallOrdersQueryHandler {
	return queries.NewGetStallOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActivityLogsQueryHandler() queries.GetActivityLogsQueryHandler {
	return queries.NewGetActivityLogsQueryHandler(c.gormDB, c.deps.Clock)
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.CreateGorm()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncActivityUoWFactory func() commands.ActivityUoW

func (f FuncActivityUoWFactory) Create() commands.ActivityUoW {
	return f()
}

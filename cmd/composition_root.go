package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/broadcast"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	broadcaster *broadcast.Broadcaster
}

// NewCompositionRoot wires the object graph. The optional sinks are attached
// to the broadcaster so every published snapshot also reaches them.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger, sinks ...broadcast.Sink) CompositionRoot {
	root := CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}

	source := broadcast.NewQuerySnapshotSource(root.CreateGetOrderTrackingQueryHandler())
	root.broadcaster = broadcast.NewBroadcaster(source, logger, sinks...)

	return root
}

// Broadcaster exposes the shared snapshot broadcaster.
func (c *CompositionRoot) Broadcaster() *broadcast.Broadcaster {
	return c.broadcaster
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.broadcaster)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderStatusCommandHandler(f, services.NewCommissionCalculator(), c.broadcaster)
}

func (c *CompositionRoot) CreateCreateCommissionRuleCommandHandler() commands.CreateCommissionRuleCommandHandler {
	return commands.NewCreateCommissionRuleCommandHandler(c.commissionUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCommissionRuleCommandHandler() commands.UpdateCommissionRuleCommandHandler {
	return commands.NewUpdateCommissionRuleCommandHandler(c.commissionUoWFactory())
}

func (c *CompositionRoot) CreateDeleteCommissionRuleCommandHandler() commands.DeleteCommissionRuleCommandHandler {
	return commands.NewDeleteCommissionRuleCommandHandler(c.commissionUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB, services.NewETAEstimator())
}

func (c *CompositionRoot) CreateGetDriverRouteQueryHandler() queries.GetDriverRouteQueryHandler {
	return queries.NewGetDriverRouteQueryHandler(c.gormDB, services.NewRoutePlanner())
}

func (c *CompositionRoot) CreateGetActiveRuleQueryHandler() queries.GetActiveRuleQueryHandler {
	return queries.NewGetActiveRuleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateQuoteCommissionQueryHandler() queries.QuoteCommissionQueryHandler {
	return queries.NewQuoteCommissionQueryHandler(c.gormDB, services.NewCommissionCalculator())
}

func (c *CompositionRoot) commissionUoWFactory() commands.CommissionUoWFactory {
	return FuncCommissionUoWFactory(func() commands.CommissionUoW {
		return c.uowFactory.Create()
	})
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncTransitionUoWFactory func() commands.TransitionUoW

func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

type FuncCommissionUoWFactory func() commands.CommissionUoW

func (f FuncCommissionUoWFactory) Create() commands.CommissionUoW {
	return f()
}

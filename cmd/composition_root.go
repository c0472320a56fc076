package cmd

import (
	httpin "deliverybroker/internal/adapters/in/http"
	"deliverybroker/internal/adapters/out/postgres"
	"deliverybroker/internal/core/application/usecases/commands"
	"deliverybroker/internal/core/application/usecases/queries"
	"deliverybroker/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Everything hangs off
// the shared gorm connection, the Redis-backed cache and notifier, and the
// Kafka publisher; each handler gets its own request-scoped unit of work
// through the factory.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cache      ports.InRouteCache
	notifier   ports.Notifier
	publisher  ports.EventPublisher
}

// NewCompositionRoot creates the root from the shared infrastructure
// connections.
func NewCompositionRoot(
	gormDB *gorm.DB,
	cache ports.InRouteCache,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      cache,
		notifier:   notifier,
		publisher:  publisher,
	}
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptDeliveryCommandHandler(f, c.cache, c.notifier)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.cache, c.notifier)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelDeliveryCommandHandler(f, c.cache, c.notifier)
}

func (c *CompositionRoot) CreateDepositFundsCommandHandler() commands.DepositFundsCommandHandler {
	var f commands.AccountUoWFactory = FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDepositFundsCommandHandler(f)
}

func (c *CompositionRoot) CreateReviewAccountCommandHandler() commands.ReviewAccountCommandHandler {
	var f commands.AccountUoWFactory = FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewAccountCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchOutboxCommandHandler() commands.DispatchOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOutboxCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRebuildCacheCommandHandler() commands.RebuildCacheCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRebuildCacheCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetClientDeliveriesQueryHandler() queries.GetClientDeliveriesQueryHandler {
	return queries.NewGetClientDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverDeliveriesQueryHandler() queries.GetDriverDeliveriesQueryHandler {
	return queries.NewGetDriverDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableDeliveriesQueryHandler() queries.GetAvailableDeliveriesQueryHandler {
	return queries.NewGetAvailableDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInRouteDeliveriesQueryHandler() queries.GetInRouteDeliveriesQueryHandler {
	return queries.NewGetInRouteDeliveriesQueryHandler(c.cache)
}

// CreateHTTPServer assembles the echo-facing server from all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateAcceptDeliveryCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateCancelDeliveryCommandHandler(),
		c.CreateDepositFundsCommandHandler(),
		c.CreateReviewAccountCommandHandler(),
		c.CreateListDeliveriesQueryHandler(),
		c.CreateGetClientDeliveriesQueryHandler(),
		c.CreateGetDriverDeliveriesQueryHandler(),
		c.CreateGetAvailableDeliveriesQueryHandler(),
		c.CreateGetInRouteDeliveriesQueryHandler(),
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

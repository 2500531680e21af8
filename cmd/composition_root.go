package cmd

import (
	"log/slog"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/jobs"
	"fulfillment/internal/tracking"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	schedule   order.Schedule
	config     Config
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		schedule:   order.DefaultSchedule(),
		config:     config,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() (commands.AdvanceOrderCommandHandler, error) {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, c.schedule)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() (commands.CancelOrderCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.schedule)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateReleaseCourierCommandHandler() commands.ReleaseCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateRetryAssignmentsCommandHandler() commands.RetryAssignmentsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRetryAssignmentsCommandHandler(f)
}

func (c *CompositionRoot) CreateSweepAssignmentsCommandHandler() commands.SweepAssignmentsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepAssignmentsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

// CreateTracker builds the per-order polling loop wired to the lifecycle
// handlers.
func (c *CompositionRoot) CreateTracker(logger *slog.Logger) (*tracking.Tracker, error) {
	advancer, err := c.CreateAdvanceOrderCommandHandler()
	if err != nil {
		return nil, err
	}

	canceller, err := c.CreateCancelOrderCommandHandler()
	if err != nil {
		return nil, err
	}

	opts := []tracking.Option{}
	if c.config.TrackingPollInterval > 0 {
		opts = append(opts, tracking.WithPollInterval(c.config.TrackingPollInterval))
	}

	return tracking.NewTracker(
		advancer,
		canceller,
		c.CreateAssignCourierCommandHandler(),
		c.CreateGetOrderStatusQueryHandler(),
		logger,
		opts...,
	), nil
}

// CreateJobManager builds the background safety-net jobs.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	timeout := c.config.CourierReclaimTimeout
	if timeout <= 0 {
		timeout = 20 * time.Minute
	}

	return jobs.NewJobManager(
		c.CreateRetryAssignmentsCommandHandler(),
		c.CreateSweepAssignmentsCommandHandler(),
		timeout,
		logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

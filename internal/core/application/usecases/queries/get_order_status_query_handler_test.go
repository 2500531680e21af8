package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderStatusQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderStatusQueryHandler
}

func (suite *GetOrderStatusQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetOrderStatusQueryHandler(db)
}

func (suite *GetOrderStatusQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetOrderStatusQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderStatusQueryHandlerTestSuite) TestHandle_ReturnsStoredStatus() {
	ctx := context.Background()
	id := kernel.NewUUID()

	dto := orderrepo.OrderDTO{
		ID:         id.Bytes(),
		TotalPrice: 25,
		Status:     int(order.OutForDelivery),
		CreatedAt:  time.Now().UTC().Add(-25 * time.Minute),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)

	query, err := queries.NewGetOrderStatusQuery(id)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(response.ID.IsEqual(id))
	suite.Equal(order.OutForDelivery, response.Status)
}

func (suite *GetOrderStatusQueryHandlerTestSuite) TestHandle_UnknownOrder() {
	ctx := context.Background()

	query, err := queries.NewGetOrderStatusQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(ctx, query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderStatusQueryHandlerTestSuite) TestHandle_ValidationError() {
	ctx := context.Background()

	_, err := suite.handler.Handle(ctx, queries.GetOrderStatusQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOrderStatusQueryIsNotConstructed)
}

func TestGetOrderStatusQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderStatusQueryHandlerTestSuite))
}

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgresadapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/commissionrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/restaurantrepo"
	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusHistoryDTO{},
		&commissionrepo.RuleDTO{},
		&commissionrepo.SettlementDTO{},
		&restaurantrepo.RestaurantDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_status_history, commission_rules, settlements, restaurants").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	delivery, err := kernel.NewGeoPoint(41.311151, 69.279737)
	suite.Require().NoError(err)
	pickup, err := kernel.NewGeoPoint(41.326413, 69.228711)
	suite.Require().NoError(err)

	item, err := order.NewItem("samsa", 15, 4)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), order.NewOrderParams{
		CustomerID:         kernel.NewUUID(),
		RestaurantID:       kernel.NewUUID(),
		Items:              []order.Item{item},
		DeliveryFee:        20,
		Tax:                5,
		Currency:           "UZS",
		DeliveryAddress:    "7 Shota Rustaveli St",
		DeliveryLocation:   delivery,
		RestaurantLocation: pickup,
		PaymentMethod:      "cash",
	}, time.Now())
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitPersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))

	settlement, err := commission.NewSettlement(
		kernel.NewUUID(), aggregate.ID(), aggregate.RestaurantID(), aggregate.Total(), 8,
		aggregate.Total()*0.08, aggregate.Total()*0.92, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CommissionRepository().AddSettlement(ctx, settlement))

	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	loaded, err := verify.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(aggregate))

	var settlements int64
	suite.Require().NoError(
		suite.db.Table("settlements").Where("order_id = ?", aggregate.ID().String()).Count(&settlements).Error)
	suite.Equal(int64(1), settlements)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsAllWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))

	settlement, err := commission.NewSettlement(
		kernel.NewUUID(), aggregate.ID(), aggregate.RestaurantID(), aggregate.Total(), 8,
		aggregate.Total()*0.08, aggregate.Total()*0.92, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CommissionRepository().AddSettlement(ctx, settlement))

	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	_, err = verify.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var settlements int64
	suite.Require().NoError(suite.db.Table("settlements").Count(&settlements).Error)
	suite.Zero(settlements)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBeginFails() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackWithoutBeginFails() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoriesWorkWithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	aggregate := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))

	loaded, err := uow.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(aggregate))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

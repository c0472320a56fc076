package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	postgres_adapter "deliverybroker/internal/adapters/out/postgres"
	"deliverybroker/internal/adapters/out/postgres/accountrepo"
	"deliverybroker/internal/adapters/out/postgres/deliveryrepo"
	"deliverybroker/internal/adapters/out/postgres/outboxrepo"
	"deliverybroker/internal/core/domain/events"
	"deliverybroker/internal/core/domain/model/account"
	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/core/domain/model/outbox"
	"deliverybroker/internal/core/ports"
	"deliverybroker/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&deliveryrepo.DeliveryDTO{}, &accountrepo.AccountDTO{}, &outboxrepo.MessageDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries, accounts, outbox").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.DeliveryRepository())
	suite.NotNil(uow1.AccountRepository())
	suite.NotNil(uow1.OutboxRepository())
	suite.NotNil(uow2.DeliveryRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Multiple begin calls must not open nested transactions
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_DeliverySettlementWorkflow runs the full happy path through
// real storage: post a delivery, accept it, complete it, settle both ledgers,
// and enqueue the outbox event, all within transactions.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DeliverySettlementWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	client := createTestClient(suite.T(), decimal.NewFromInt(500))
	driver := createTestDriver(suite.T())
	testDelivery := createTestDelivery(client.ID())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.AccountRepository().Add(ctx, client))
	suite.Require().NoError(uow.AccountRepository().Add(ctx, driver))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, testDelivery))
	suite.Require().NoError(uow.Commit(ctx))

	// Accept
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Assign(driver.ID()))
	suite.Require().NoError(uow.DeliveryRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	// Complete and settle
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err = uow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Complete(driver.ID()))
	suite.Require().NoError(uow.DeliveryRepository().Update(ctx, loaded))

	payer, err := uow.AccountRepository().Get(ctx, client.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(payer.Debit(loaded.OfferedPrice()))
	suite.Require().NoError(uow.AccountRepository().Update(ctx, payer))

	payee, err := uow.AccountRepository().Get(ctx, driver.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(payee.Credit(loaded.OfferedPrice()))
	suite.Require().NoError(uow.AccountRepository().Update(ctx, payee))

	message, err := outbox.NewMessage(
		events.TopicDeliveryCompleted,
		loaded.ID().String(),
		events.DeliveryCompleted{DeliveryID: loaded.ID().String()},
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, message))

	suite.Require().NoError(uow.Commit(ctx))

	// Verify final state with a fresh unit of work
	newUow := suite.factory.Create()

	finalDelivery, err := newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Completed, finalDelivery.Status())
	suite.Require().NotNil(finalDelivery.Driver())
	suite.True(driver.ID().IsEqual(*finalDelivery.Driver()))

	finalClient, err := newUow.AccountRepository().Get(ctx, client.ID())
	suite.Require().NoError(err)
	suite.True(finalClient.ClientBalance().Equal(decimal.NewFromInt(400)),
		"client balance should drop by the offered price")

	finalDriver, err := newUow.AccountRepository().Get(ctx, driver.ID())
	suite.Require().NoError(err)
	suite.True(finalDriver.DriverBalance().Equal(decimal.NewFromInt(100)),
		"driver balance should grow by the offered price")

	pending, err := newUow.OutboxRepository().GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(events.TopicDeliveryCompleted, pending[0].Topic())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	client := createTestClient(suite.T(), decimal.NewFromInt(500))
	testDelivery := createTestDelivery(client.ID())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.AccountRepository().Add(ctx, client))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, testDelivery))

	// Visible inside the transaction
	_, err = uow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().Error(err, "Delivery should not exist after rollback")

	_, err = newUow.AccountRepository().Get(ctx, client.ID())
	suite.Require().Error(err, "Account should not exist after rollback")
}

// TestUnitOfWork_VersionConflict verifies the optimistic concurrency check:
// the second writer working from a stale aggregate must lose.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_VersionConflict() {
	ctx := context.Background()

	client := createTestClient(suite.T(), decimal.NewFromInt(500))
	testDelivery := createTestDelivery(client.ID())
	driver1 := createTestDriver(suite.T())
	driver2 := createTestDriver(suite.T())

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.DeliveryRepository().Add(ctx, testDelivery))

	// Two copies loaded at the same version
	uow1 := suite.factory.Create()
	copy1, err := uow1.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	uow2 := suite.factory.Create()
	copy2, err := uow2.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(copy1.Assign(driver1.ID()))
	suite.Require().NoError(uow1.DeliveryRepository().Update(ctx, copy1))

	suite.Require().NoError(copy2.Assign(driver2.ID()))
	err = uow2.DeliveryRepository().Update(ctx, copy2)
	suite.Require().Error(err, "Stale update should be rejected")
	suite.Require().True(errors.Is(err, errs.ErrVersionConflict))

	// The first writer's assignment survives
	finalUow := suite.factory.Create()
	final, err := finalUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(final.Driver())
	suite.True(driver1.ID().IsEqual(*final.Driver()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	client := createTestClient(suite.T(), decimal.NewFromInt(100))
	delivery1 := createTestDelivery(client.ID())
	delivery2 := createTestDelivery(client.ID())

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.DeliveryRepository().Add(ctx, delivery1))
	suite.Require().NoError(uow2.DeliveryRepository().Add(ctx, delivery2))

	// Each transaction only sees its own changes
	_, err := uow1.DeliveryRepository().Get(ctx, delivery1.ID())
	suite.Require().NoError(err, "UOW1 should see delivery1")

	_, err = uow1.DeliveryRepository().Get(ctx, delivery2.ID())
	suite.Require().Error(err, "UOW1 should not see delivery2")

	_, err = uow2.DeliveryRepository().Get(ctx, delivery2.ID())
	suite.Require().NoError(err, "UOW2 should see delivery2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.DeliveryRepository().Get(ctx, delivery1.ID())
	suite.Require().NoError(err, "delivery1 should persist after commit")

	_, err = newUow.DeliveryRepository().Get(ctx, delivery2.ID())
	suite.Require().Error(err, "delivery2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	client := createTestClient(suite.T(), decimal.NewFromInt(100))

	err := uow.AccountRepository().Add(ctx, client)
	suite.Require().NoError(err)

	retrieved, err := uow.AccountRepository().Get(ctx, client.ID())
	suite.Require().NoError(err)
	suite.True(client.ID().IsEqual(retrieved.ID()))

	byEmail, err := uow.AccountRepository().GetByEmail(ctx, client.Email())
	suite.Require().NoError(err)
	suite.True(client.ID().IsEqual(byEmail.ID()))
}

// TestUnitOfWork_OutboxDrainOrder verifies pending messages come back oldest
// first and disappear from the pending set once marked published.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OutboxDrainOrder() {
	ctx := context.Background()
	uow := suite.factory.Create()

	first, err := outbox.NewMessage(events.TopicDeliveryRequested, "key-1", events.DeliveryRequested{})
	suite.Require().NoError(err)
	second, err := outbox.NewMessage(events.TopicDeliveryRequested, "key-2", events.DeliveryRequested{})
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OutboxRepository().Add(ctx, first))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, second))

	pending, err := uow.OutboxRepository().GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal("key-1", pending[0].Key())

	suite.Require().NoError(pending[0].MarkPublished())
	suite.Require().NoError(uow.OutboxRepository().MarkPublished(ctx, pending[0]))

	pending, err = uow.OutboxRepository().GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("key-2", pending[0].Key())
}

// createTestDelivery creates a valid available delivery for testing purposes.
func createTestDelivery(clientID kernel.UUID) *delivery.Delivery {
	testDelivery, _ := delivery.NewDelivery(
		kernel.NewUUID(),
		clientID,
		"12 Pickup Lane",
		"34 Dropoff Road",
		"Boxed glassware",
		decimal.NewFromFloat(1.5),
		decimal.NewFromInt(100),
	)
	return testDelivery
}

// createTestClient creates an approved client with the given balance.
func createTestClient(t *testing.T, balance decimal.Decimal) *account.Account {
	t.Helper()

	id := kernel.NewUUID()
	client, err := account.NewAccount(id, "Test Client", uniqueEmail("client", id), account.RoleClient)
	if err != nil {
		t.Fatal(err)
	}
	if err := client.Approve(); err != nil {
		t.Fatal(err)
	}
	if balance.IsPositive() {
		if err := client.Credit(balance); err != nil {
			t.Fatal(err)
		}
	}
	return client
}

// createTestDriver creates an approved driver with a zero balance.
func createTestDriver(t *testing.T) *account.Account {
	t.Helper()

	id := kernel.NewUUID()
	driver, err := account.NewAccount(id, "Test Driver", uniqueEmail("driver", id), account.RoleDriver)
	if err != nil {
		t.Fatal(err)
	}
	if err := driver.Approve(); err != nil {
		t.Fatal(err)
	}
	return driver
}

// uniqueEmail derives a unique address from the account id so the email
// unique index never collides across tests.
func uniqueEmail(prefix string, id kernel.UUID) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, id.String()[:8])
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

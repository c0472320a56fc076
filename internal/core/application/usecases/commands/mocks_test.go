package commands_test

import (
	"context"
	"testing"
	"time"

	"deliverybroker/internal/core/application/usecases/commands"
	"deliverybroker/internal/core/domain/model/account"
	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/core/domain/model/outbox"
	"deliverybroker/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByClient(ctx context.Context, clientID kernel.UUID) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByDriver(ctx context.Context, driverID kernel.UUID) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByStatus(ctx context.Context, status delivery.Status) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAll(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByStatus(ctx context.Context, status account.Status) ([]*account.Account, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockAccountUoWFactory struct{ mock.Mock }

func (m *MockAccountUoWFactory) Create() commands.AccountUoW {
	args := m.Called()
	return args.Get(0).(commands.AccountUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockInRouteCache struct{ mock.Mock }

func (m *MockInRouteCache) Put(ctx context.Context, snapshot delivery.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockInRouteCache) Get(ctx context.Context, id kernel.UUID) (delivery.Snapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(delivery.Snapshot), args.Error(1)
}

func (m *MockInRouteCache) ByDriver(ctx context.Context, driverID kernel.UUID) ([]delivery.Snapshot, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]delivery.Snapshot), args.Error(1)
}

func (m *MockInRouteCache) All(ctx context.Context) ([]delivery.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]delivery.Snapshot), args.Error(1)
}

func (m *MockInRouteCache) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInRouteCache) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyAvailable(ctx context.Context, snapshot delivery.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockNotifier) NotifyDriver(ctx context.Context, driverID kernel.UUID, snapshot delivery.Snapshot) error {
	args := m.Called(ctx, driverID, snapshot)
	return args.Error(0)
}

func (m *MockNotifier) NotifyUpdate(ctx context.Context, snapshot delivery.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

// relaxedNotifier accepts any notification; handlers drop notifier errors.
func relaxedNotifier() *MockNotifier {
	notifier := new(MockNotifier)
	notifier.On("NotifyAvailable", mock.Anything, mock.Anything).Return(nil).Maybe()
	notifier.On("NotifyDriver", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	notifier.On("NotifyUpdate", mock.Anything, mock.Anything).Return(nil).Maybe()
	return notifier
}

func restoreTestAccount(
	t *testing.T,
	id kernel.UUID,
	role account.Role,
	status account.Status,
	balance decimal.Decimal,
) *account.Account {
	t.Helper()

	now := time.Now().UTC()
	clientBalance := decimal.Zero
	driverBalance := decimal.Zero
	if role == account.RoleClient {
		clientBalance = balance
	} else {
		driverBalance = balance
	}

	a, err := account.RestoreAccount(
		id, "Test Account", "account@example.com", role, status,
		clientBalance, driverBalance, decimal.Zero,
		1, now, now,
	)
	require.NoError(t, err)
	return a
}

func restoreTestDelivery(
	t *testing.T,
	id kernel.UUID,
	clientID kernel.UUID,
	driverID *kernel.UUID,
	status delivery.Status,
	price decimal.Decimal,
) *delivery.Delivery {
	t.Helper()

	now := time.Now().UTC()
	d, err := delivery.RestoreDelivery(
		id, clientID, driverID,
		"12 Baker St", "221b Baker St", "documents",
		decimal.NewFromFloat(1.5), price,
		status, "", "",
		1, now, now,
	)
	require.NoError(t, err)
	return d
}

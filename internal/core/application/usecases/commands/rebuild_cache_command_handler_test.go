package commands_test

import (
	"context"
	"testing"

	"deliverybroker/internal/core/application/usecases/commands"
	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func TestRebuildCacheCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRebuildCacheCommand()

	driverID := kernel.NewUUID()
	first := restoreTestDelivery(t, kernel.NewUUID(), kernel.NewUUID(), &driverID,
		delivery.InRoute, decimal.NewFromInt(100))
	second := restoreTestDelivery(t, kernel.NewUUID(), kernel.NewUUID(), &driverID,
		delivery.InRoute, decimal.NewFromInt(50))
	inRoute := []*delivery.Delivery{first, second}

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	cache := new(MockInRouteCache)

	// Rollback is deferred, so it fires after the cache writes.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByStatus", ctx, delivery.InRoute).Return(inRoute, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Clear", ctx).Return(nil).Once(),
		cache.On("Put", ctx, mock.AnythingOfType("delivery.Snapshot")).Return(nil).Twice(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRebuildCacheCommandHandler(factory, cache)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)

	restored := cache.Calls[1].Arguments[1].(delivery.Snapshot)
	assert.Equal(t, first.ID().String(), restored.ID)

	deliveryRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRebuildCacheCommandHandler_Handle_EmptyResult(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRebuildCacheCommand()

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	cache := new(MockInRouteCache)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByStatus", ctx, delivery.InRoute).
			Return([]*delivery.Delivery{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Clear", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRebuildCacheCommandHandler(factory, cache)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	cache.AssertNotCalled(t, "Put", ctx, mock.Anything)
}

func TestRebuildCacheCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.RebuildCacheCommand // not constructed properly

	factory := new(MockDeliveryUoWFactory)
	handler := commands.NewRebuildCacheCommandHandler(factory, new(MockInRouteCache))
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrRebuildCacheCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

package commands_test

import (
	"testing"

	"deliverybroker/internal/core/application/usecases/commands"
	"deliverybroker/internal/core/domain/model/account"
	"deliverybroker/internal/core/domain/model/delivery"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	deliveryID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	clientID := kernel.NewUUID()

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, driverID)
	require.NoError(t, err)

	driver := restoreTestAccount(t, driverID, account.RoleDriver, account.Approved, decimal.Zero)
	testDelivery := restoreTestDelivery(t, deliveryID, clientID, nil, delivery.Available, decimal.NewFromInt(100))

	deliveryRepo := new(MockDeliveryRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, driverID).Return(driver, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryID).Return(testDelivery, nil).Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockInRouteCache)
	cache.On("Put", ctx, mock.AnythingOfType("delivery.Snapshot")).Return(nil).Once()

	handler := commands.NewAcceptDeliveryCommandHandler(factory, cache, relaxedNotifier())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.InRoute, testDelivery.Status())
	require.NotNil(t, testDelivery.Driver())
	assert.True(t, testDelivery.Driver().IsEqual(driverID))

	cached := cache.Calls[0].Arguments[1].(delivery.Snapshot)
	assert.Equal(t, "IN_ROUTE", cached.Status)

	deliveryRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptDeliveryCommandHandler_Handle_AlreadyTaken(t *testing.T) {
	ctx := t.Context()
	deliveryID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	otherDriverID := kernel.NewUUID()
	clientID := kernel.NewUUID()

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, driverID)
	require.NoError(t, err)

	driver := restoreTestAccount(t, driverID, account.RoleDriver, account.Approved, decimal.Zero)
	testDelivery := restoreTestDelivery(t, deliveryID, clientID, &otherDriverID, delivery.InRoute, decimal.NewFromInt(100))

	deliveryRepo := new(MockDeliveryRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, driverID).Return(driver, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryID).Return(testDelivery, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptDeliveryCommandHandler(factory, new(MockInRouteCache), relaxedNotifier())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBusinessRule)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAcceptDeliveryCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	deliveryID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	clientID := kernel.NewUUID()

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, driverID)
	require.NoError(t, err)

	driver := restoreTestAccount(t, driverID, account.RoleDriver, account.Approved, decimal.Zero)
	testDelivery := restoreTestDelivery(t, deliveryID, clientID, nil, delivery.Available, decimal.NewFromInt(100))

	deliveryRepo := new(MockDeliveryRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	// A racing driver committed first; the optimistic check fails this write.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, driverID).Return(driver, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryID).Return(testDelivery, nil).Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).
			Return(errs.NewVersionConflictError("deliveryID", deliveryID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockInRouteCache)
	handler := commands.NewAcceptDeliveryCommandHandler(factory, cache, relaxedNotifier())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionConflict)
	cache.AssertNotCalled(t, "Put", ctx, mock.Anything)
}

func TestAcceptDeliveryCommandHandler_Handle_ClientCannotAccept(t *testing.T) {
	ctx := t.Context()
	deliveryID := kernel.NewUUID()
	clientID := kernel.NewUUID()

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, clientID)
	require.NoError(t, err)

	client := restoreTestAccount(t, clientID, account.RoleClient, account.Approved, decimal.Zero)

	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, clientID).Return(client, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptDeliveryCommandHandler(factory, new(MockInRouteCache), relaxedNotifier())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBusinessRule)
}

func TestAcceptDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.AcceptDeliveryCommand // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewAcceptDeliveryCommandHandler(factory, new(MockInRouteCache), relaxedNotifier())
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAcceptDeliveryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

package commands_test

import (
	"testing"

	"deliverybroker/internal/core/application/usecases/commands"
	"deliverybroker/internal/core/domain/model/account"
	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewAccountCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	accountID := kernel.NewUUID()

	cmd, err := commands.NewReviewAccountCommand(adminID, accountID, true)
	require.NoError(t, err)

	admin := restoreTestAccount(t, adminID, account.RoleAdmin, account.Approved, decimal.Zero)
	target := restoreTestAccount(t, accountID, account.RoleDriver, account.PendingApproval, decimal.Zero)

	accountRepo := new(MockAccountRepository)
	uow := new(MockAccountUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, adminID).Return(admin, nil).Once(),
		accountRepo.On("Get", ctx, accountID).Return(target, nil).Once(),
		accountRepo.On("Update", ctx, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReviewAccountCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, account.Approved, target.Status())

	accountRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReviewAccountCommandHandler_Handle_Reject(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	accountID := kernel.NewUUID()

	cmd, err := commands.NewReviewAccountCommand(adminID, accountID, false)
	require.NoError(t, err)

	admin := restoreTestAccount(t, adminID, account.RoleAdmin, account.Approved, decimal.Zero)
	target := restoreTestAccount(t, accountID, account.RoleClient, account.PendingApproval, decimal.Zero)

	accountRepo := new(MockAccountRepository)
	uow := new(MockAccountUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, adminID).Return(admin, nil).Once(),
		accountRepo.On("Get", ctx, accountID).Return(target, nil).Once(),
		accountRepo.On("Update", ctx, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReviewAccountCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, account.Rejected, target.Status())
}

func TestReviewAccountCommandHandler_Handle_NonAdmin(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	accountID := kernel.NewUUID()

	cmd, err := commands.NewReviewAccountCommand(actorID, accountID, true)
	require.NoError(t, err)

	actor := restoreTestAccount(t, actorID, account.RoleClient, account.Approved, decimal.Zero)

	accountRepo := new(MockAccountRepository)
	uow := new(MockAccountUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, actorID).Return(actor, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReviewAccountCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBusinessRule)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestReviewAccountCommandHandler_Handle_AlreadyReviewed(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	accountID := kernel.NewUUID()

	cmd, err := commands.NewReviewAccountCommand(adminID, accountID, true)
	require.NoError(t, err)

	admin := restoreTestAccount(t, adminID, account.RoleAdmin, account.Approved, decimal.Zero)
	target := restoreTestAccount(t, accountID, account.RoleDriver, account.Approved, decimal.Zero)

	accountRepo := new(MockAccountRepository)
	uow := new(MockAccountUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, adminID).Return(admin, nil).Once(),
		accountRepo.On("Get", ctx, accountID).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReviewAccountCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBusinessRule)
}

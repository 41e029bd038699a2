package order

import (
	"context"

	"github.com/logichain/backend/internal/domain/inventory"
	"github.com/logichain/backend/internal/domain/order"
	"github.com/logichain/backend/internal/domain/returns"
)

// TransactionScope provides transactional access to the repositories the
// order lifecycle touches. When a function is executed within a scope, all
// repository operations are part of the same database transaction and are
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to a
// single transaction. Every status transition that affects stock writes the
// order (or return), the inventory record, and the ledger entry through the
// same scope so they either all commit or none do.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.Repository
	// ReturnRepo returns the return repository scoped to the current transaction
	ReturnRepo() returns.Repository
	// InventoryRepo returns the inventory record repository scoped to the current transaction
	InventoryRepo() inventory.Repository
	// TransactionRepo returns the inventory ledger repository scoped to the current transaction
	TransactionRepo() inventory.TransactionRepository
}

// NoOpTransactionScope runs the function against the given repositories
// without opening a real transaction. Useful for tests.
type NoOpTransactionScope struct {
	orderRepo       order.Repository
	returnRepo      returns.Repository
	inventoryRepo   inventory.Repository
	transactionRepo inventory.TransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo order.Repository,
	returnRepo returns.Repository,
	inventoryRepo inventory.Repository,
	transactionRepo inventory.TransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:       orderRepo,
		returnRepo:      returnRepo,
		inventoryRepo:   inventoryRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() order.Repository {
	return s.orderRepo
}

// ReturnRepo returns the return repository.
func (s *NoOpTransactionScope) ReturnRepo() returns.Repository {
	return s.returnRepo
}

// InventoryRepo returns the inventory record repository.
func (s *NoOpTransactionScope) InventoryRepo() inventory.Repository {
	return s.inventoryRepo
}

// TransactionRepo returns the inventory ledger repository.
func (s *NoOpTransactionScope) TransactionRepo() inventory.TransactionRepository {
	return s.transactionRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/inventory"
	"github.com/logichain/backend/internal/domain/shared"
)

// referenceTypeManual tags ledger entries caused by direct stock operations
const referenceTypeManual = "MANUAL"

// Service handles inventory business operations
type Service struct {
	repo           inventory.Repository
	txRepo         inventory.TransactionRepository
	threshold      int64
	eventPublisher shared.EventPublisher
}

// NewService creates a new inventory Service. The threshold is the available
// quantity below which a product counts as low on stock.
func NewService(repo inventory.Repository, txRepo inventory.TransactionRepository, threshold int64) *Service {
	return &Service{
		repo:      repo,
		txRepo:    txRepo,
		threshold: threshold,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByID retrieves a stock record by ID
func (s *Service) GetByID(ctx context.Context, recordID uuid.UUID) (*RecordResponse, error) {
	rec, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	response := ToRecordResponse(rec)
	return &response, nil
}

// List retrieves stock records with filtering and pagination
func (s *Service) List(ctx context.Context, filter RecordListFilter) ([]RecordResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	records, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToRecordResponses(records), total, nil
}

// StockFor aggregates the stock position of a product across all warehouses
func (s *Service) StockFor(ctx context.Context, productID uuid.UUID) (*ProductStockResponse, error) {
	stock, err := s.repo.AggregateByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductStockResponse(*stock)
	return &response, nil
}

// LowStock lists every product whose available quantity is below the threshold
func (s *Service) LowStock(ctx context.Context) ([]ProductStockResponse, error) {
	stocks, err := s.repo.FindLowStock(ctx, s.threshold)
	if err != nil {
		return nil, err
	}
	return ToProductStockResponses(stocks), nil
}

// Create opens a stock record for a product-warehouse pair
func (s *Service) Create(ctx context.Context, req CreateRecordRequest) (*RecordResponse, error) {
	existing, err := s.repo.FindByProductAndWarehouse(ctx, req.ProductID, req.WarehouseID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_RECORD",
			"An inventory record already exists for this product and warehouse")
	}

	rec, err := inventory.NewRecord(req.ProductID, req.WarehouseID, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}

	if req.Quantity > 0 {
		entry, err := inventory.NewTransaction(rec, inventory.TransactionTypeReceive, req.Quantity, nil, referenceTypeManual, "Initial stock")
		if err != nil {
			return nil, err
		}
		if err := s.txRepo.Save(ctx, entry); err != nil {
			return nil, err
		}
	}

	response := ToRecordResponse(rec)
	return &response, nil
}

// Receive books incoming stock onto a product-warehouse record, creating the
// record when the pair has none yet
func (s *Service) Receive(ctx context.Context, req ReceiveStockRequest) (*RecordResponse, error) {
	rec, err := s.repo.FindByProductAndWarehouse(ctx, req.ProductID, req.WarehouseID)
	if errors.Is(err, shared.ErrNotFound) {
		rec, err = inventory.NewRecord(req.ProductID, req.WarehouseID, 0)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Save(ctx, rec); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if err := rec.Receive(req.Quantity); err != nil {
		return nil, err
	}

	if err := s.repo.SaveWithLock(ctx, rec); err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "Stock received"
	}
	entry, err := inventory.NewTransaction(rec, inventory.TransactionTypeReceive, req.Quantity, nil, referenceTypeManual, reason)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, rec)

	response := ToRecordResponse(rec)
	return &response, nil
}

// Adjust corrects a record's on-hand quantity to a counted value
func (s *Service) Adjust(ctx context.Context, recordID uuid.UUID, req AdjustRecordRequest) (*RecordResponse, error) {
	rec, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	delta := req.Quantity - rec.Quantity

	if err := rec.Adjust(req.Quantity, req.Reason); err != nil {
		return nil, err
	}

	if err := s.repo.SaveWithLock(ctx, rec); err != nil {
		return nil, err
	}

	if delta != 0 {
		entry, err := inventory.NewTransaction(rec, inventory.TransactionTypeAdjust, delta, nil, referenceTypeManual, req.Reason)
		if err != nil {
			return nil, err
		}
		if err := s.txRepo.Save(ctx, entry); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, rec)

	response := ToRecordResponse(rec)
	return &response, nil
}

// Delete removes a stock record. Records holding reservations cannot be deleted.
func (s *Service) Delete(ctx context.Context, recordID uuid.UUID) error {
	rec, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return err
	}
	if rec.ReservedQuantity > 0 {
		return shared.NewDomainError("RECORD_IN_USE",
			"Cannot delete an inventory record with outstanding reservations")
	}
	return s.repo.Delete(ctx, recordID)
}

// Transactions lists the stock movement ledger of a product, newest first
func (s *Service) Transactions(ctx context.Context, productID uuid.UUID, filter RecordListFilter) ([]TransactionResponse, error) {
	txs, err := s.txRepo.FindByProduct(ctx, productID, s.buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(txs), nil
}

func (s *Service) buildFilter(filter RecordListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}

	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.WarehouseID != nil {
		domainFilter.Filters["warehouse_id"] = *filter.WarehouseID
	}

	return domainFilter
}

func (s *Service) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	aggregate.ClearDomainEvents()
}

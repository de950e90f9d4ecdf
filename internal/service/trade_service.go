package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"giftfall/api/internal/ids"
	"giftfall/api/internal/models"
	"giftfall/api/internal/repository"
)

var ErrAlreadyCompleted = errors.New("transaction already completed")

const transactionDateLayout = "2006-01-02"

type TransactionStore interface {
	Create(ctx context.Context, txn models.Transaction) error
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	List(ctx context.Context) ([]models.Transaction, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]models.Transaction, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.Transaction, error)
	Complete(ctx context.Context, id string) (models.Transaction, error)
	Update(ctx context.Context, id string, txn models.Transaction) error
	SetStatus(ctx context.Context, id string, status models.TransactionStatus) error
	Delete(ctx context.Context, id string) error
}

// ItemReader is the slice of the item store the lifecycle needs for
// enrichment and the reactive correction.
type ItemReader interface {
	GetByID(ctx context.Context, id string) (models.Item, error)
}

// TradeService owns the transaction lifecycle:
//
//	Pending -> Completed      (accept; cascades both items to Sold)
//	Pending -> Not Completed  (reactive correction when an item sold elsewhere)
type TradeService struct {
	txns  TransactionStore
	items ItemReader
	log   zerolog.Logger
}

func NewTradeService(txns TransactionStore, items ItemReader, log zerolog.Logger) *TradeService {
	return &TradeService{
		txns:  txns,
		items: items,
		log:   log,
	}
}

type TransactionInput struct {
	BuyerID      string
	SellerID     string
	BuyerItemID  string
	SellerItemID string
	Date         string
	Status       string
	TotalAmount  *float64
}

func (in TransactionInput) toModel(id string, status models.TransactionStatus) (models.Transaction, error) {
	date, err := time.Parse(transactionDateLayout, in.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %q", ErrInvalidDate, in.Date)
	}

	return models.Transaction{
		ID:           id,
		BuyerID:      in.BuyerID,
		SellerID:     in.SellerID,
		BuyerItemID:  in.BuyerItemID,
		SellerItemID: in.SellerItemID,
		Date:         date,
		Status:       status,
		TotalAmount:  in.TotalAmount,
	}, nil
}

// Create inserts a new proposed exchange. A client-supplied terminal status is
// never honored: every transaction starts Pending and completion requires the
// explicit accept step.
func (s *TradeService) Create(ctx context.Context, input TransactionInput) (models.Transaction, error) {
	txn, err := input.toModel(ids.New(), models.TransactionStatusPending)
	if err != nil {
		return models.Transaction{}, err
	}

	if err := s.txns.Create(ctx, txn); err != nil {
		return models.Transaction{}, err
	}
	return txn, nil
}

// Accept moves the transaction to Completed and marks both items Sold. The
// cascade runs atomically in the store.
func (s *TradeService) Accept(ctx context.Context, id string) (models.Transaction, error) {
	txn, err := s.txns.Complete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyCompleted) {
			return models.Transaction{}, ErrAlreadyCompleted
		}
		return models.Transaction{}, err
	}

	s.log.Info().Str("transaction_id", id).Msg("transaction completed")
	return txn, nil
}

// Update rewrites the full record; the caller's status is honored here, and a
// resulting Completed status re-applies the item-sold cascade.
func (s *TradeService) Update(ctx context.Context, id string, input TransactionInput) (models.Transaction, error) {
	status := input.Status
	if status == "" {
		status = models.TransactionStatusPending
	}

	txn, err := input.toModel(id, status)
	if err != nil {
		return models.Transaction{}, err
	}

	if err := s.txns.Update(ctx, id, txn); err != nil {
		return models.Transaction{}, err
	}
	return txn, nil
}

func (s *TradeService) Get(ctx context.Context, id string) (models.Transaction, error) {
	return s.txns.GetByID(ctx, id)
}

func (s *TradeService) Delete(ctx context.Context, id string) error {
	return s.txns.Delete(ctx, id)
}

func (s *TradeService) List(ctx context.Context) ([]models.Transaction, error) {
	txns, err := s.txns.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrichAndCorrect(ctx, txns)
}

func (s *TradeService) ListByBuyer(ctx context.Context, buyerID string) ([]models.Transaction, error) {
	txns, err := s.txns.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return s.enrichAndCorrect(ctx, txns)
}

func (s *TradeService) ListBySeller(ctx context.Context, sellerID string) ([]models.Transaction, error) {
	txns, err := s.txns.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return s.enrichAndCorrect(ctx, txns)
}

// enrichAndCorrect attaches the current state of both referenced items and
// applies the reactive correction: a transaction that has not completed but
// whose item was sold through another transaction is rewritten to
// Not Completed. Corrections run synchronously, one transaction at a time.
func (s *TradeService) enrichAndCorrect(ctx context.Context, txns []models.Transaction) ([]models.Transaction, error) {
	for i := range txns {
		buyerItem, err := s.lookupItem(ctx, txns[i].BuyerItemID)
		if err != nil {
			return nil, err
		}
		sellerItem, err := s.lookupItem(ctx, txns[i].SellerItemID)
		if err != nil {
			return nil, err
		}
		txns[i].BuyerItem = buyerItem
		txns[i].SellerItem = sellerItem

		if txns[i].Status != models.TransactionStatusPending {
			continue
		}
		if itemSold(buyerItem) || itemSold(sellerItem) {
			if err := s.txns.SetStatus(ctx, txns[i].ID, models.TransactionStatusNotCompleted); err != nil {
				return nil, err
			}
			txns[i].Status = models.TransactionStatusNotCompleted
			s.log.Info().Str("transaction_id", txns[i].ID).Msg("transaction corrected to not completed")
		}
	}
	return txns, nil
}

func (s *TradeService) lookupItem(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func itemSold(item *models.Item) bool {
	return item != nil && item.Status == models.ItemStatusSold
}

// Reconcile is the sweep form of the reactive correction, run on a schedule
// so statuses converge even for transactions nobody lists.
func (s *TradeService) Reconcile(ctx context.Context) (int, error) {
	txns, err := s.txns.List(ctx)
	if err != nil {
		return 0, err
	}

	corrected := 0
	for _, txn := range txns {
		if txn.Status != models.TransactionStatusPending {
			continue
		}
		buyerItem, err := s.lookupItem(ctx, txn.BuyerItemID)
		if err != nil {
			return corrected, err
		}
		sellerItem, err := s.lookupItem(ctx, txn.SellerItemID)
		if err != nil {
			return corrected, err
		}
		if itemSold(buyerItem) || itemSold(sellerItem) {
			if err := s.txns.SetStatus(ctx, txn.ID, models.TransactionStatusNotCompleted); err != nil {
				return corrected, err
			}
			corrected++
		}
	}
	return corrected, nil
}

package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"catalog-service/internal/domain"
)

// BulkRow is the outcome of one uploaded row. Exactly one of Product and
// Error is set.
type BulkRow struct {
	Index   int             `json:"index"`
	Product *domain.Product `json:"product,omitempty"`
	Error   *Failure        `json:"error,omitempty"`
}

// BulkResult reports every row of a bulk upload in input order.
type BulkResult struct {
	BatchID   uuid.UUID `json:"batchId"`
	Rows      []BulkRow `json:"rows"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
}

// defaultAccount is the ledger pair tagged onto bulk rows without one.
func defaultAccount() *domain.Account {
	return &domain.Account{Sales: domain.AccountSales, Purchase: domain.AccountCostOfGoodsSold}
}

// BulkCreateProducts creates every row independently and concurrently.
// Rows are not transactional: a failing row never stops the others, and
// rows created before a failure stay created.
func (s *Service) BulkCreateProducts(ctx context.Context, storeID string, rows []ProductFields) (*BulkResult, error) {
	if len(rows) == 0 {
		return nil, invalidInput("At least one product row is required", nil)
	}

	result := &BulkResult{
		BatchID: uuid.New(),
		Rows:    make([]BulkRow, len(rows)),
	}
	logger := s.logger.With(zap.String("batchId", result.BatchID.String()), zap.String("storeId", storeID))

	var g errgroup.Group
	g.SetLimit(s.bulkLimit)
	for i, row := range rows {
		i, row := i, row
		if row.Account == nil || row.Account.IsZero() {
			row.Account = defaultAccount()
		}
		g.Go(func() error {
			product, err := s.CreateProduct(ctx, CreateProductRequest{StoreID: storeID, ProductFields: row})
			if err != nil {
				result.Rows[i] = BulkRow{Index: i, Error: AsFailure(err)}
				return nil
			}
			result.Rows[i] = BulkRow{Index: i, Product: product}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range result.Rows {
		if r.Error != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}
	logger.Info("bulk upload finished",
		zap.Int("rows", len(rows)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// Package repotest holds behaviour checks shared by every TransactionRepositoryFacade implementation.
package repotest

import (
	"context"
	"time"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portsrepo "github.com/SscSPs/transactions_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionRepositorySuite runs against a fresh, empty repository per test.
type TransactionRepositorySuite struct {
	suite.Suite
	NewRepo func() portsrepo.TransactionRepositoryFacade
	repo    portsrepo.TransactionRepositoryFacade
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.repo = s.NewRepo()
}

// Fixture returns n records of price 1.00 and quantity 1 in currency, each costing 1.00.
func Fixture(n int, currency domain.Currency) []domain.Transaction {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	scale := currency.ScaleFactor()
	txns := make([]domain.Transaction, n)
	for i := range txns {
		txns[i] = domain.Transaction{
			Cost:        domain.MustNewMoney(scale, currency),
			Price:       domain.MustNewMoney(scale, currency),
			Quantity:    decimal.NewFromInt(1),
			AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		}
	}
	return txns
}

func (s *TransactionRepositorySuite) TestEmptyStore() {
	ctx := context.Background()

	count, err := s.repo.CountTransactions(ctx)
	s.Require().NoError(err)
	s.Zero(count)

	_, err = s.repo.FindTransactionIDAtOffset(ctx, 0)
	s.ErrorIs(err, apperrors.ErrNotFound)

	page, err := s.repo.ListTransactionsFromID(ctx, 1, 10)
	s.Require().NoError(err)
	s.Empty(page)

	_, err = s.repo.FindTransactionByID(ctx, 1)
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.NoError(s.repo.Ping(ctx))
}

func (s *TransactionRepositorySuite) TestSaveAndFindTransaction() {
	ctx := context.Background()
	created := time.Date(2024, 1, 2, 3, 4, 5, 600000000, time.UTC)
	txn := domain.Transaction{
		Cost:        domain.MustNewMoney(12345, domain.KWD),
		Price:       domain.MustNewMoney(4115, domain.KWD),
		Quantity:    decimal.RequireFromString("3.00"),
		AuditFields: domain.AuditFields{CreatedAt: created, UpdatedAt: created},
	}

	first, err := s.repo.SaveTransaction(ctx, txn)
	s.Require().NoError(err)
	second, err := s.repo.SaveTransaction(ctx, txn)
	s.Require().NoError(err)
	s.Positive(first.ID)
	s.Greater(second.ID, first.ID)

	found, err := s.repo.FindTransactionByID(ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, found.ID)
	s.True(txn.Cost.Equals(found.Cost))
	s.True(txn.Price.Equals(found.Price))
	s.True(txn.Quantity.Equal(found.Quantity), "quantity %s", found.Quantity)
	s.True(created.Equal(found.CreatedAt))
	s.True(created.Equal(found.UpdatedAt))
}

func (s *TransactionRepositorySuite) TestRejectsQuantityOutsideColumnRange() {
	ctx := context.Background()
	bad := Fixture(1, domain.EGP)[0]
	bad.Quantity = decimal.New(1, 10)

	_, err := s.repo.SaveTransaction(ctx, bad)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, domain.ErrInvalidQuantity)

	batch := Fixture(3, domain.EGP)
	batch[2].Quantity = decimal.New(1, -9999999)
	_, err = s.repo.SaveTransactionsBatch(ctx, batch)
	s.ErrorIs(err, apperrors.ErrValidation)

	count, err := s.repo.CountTransactions(ctx)
	s.Require().NoError(err)
	s.Zero(count, "no row of a rejected batch is stored")
}

func (s *TransactionRepositorySuite) TestBatchOffsetsAndKeysetPages() {
	ctx := context.Background()

	n, err := s.repo.SaveTransactionsBatch(ctx, Fixture(25, domain.EGP))
	s.Require().NoError(err)
	s.Equal(int64(25), n)

	n, err = s.repo.SaveTransactionsBatch(ctx, nil)
	s.Require().NoError(err)
	s.Zero(n)

	count, err := s.repo.CountTransactions(ctx)
	s.Require().NoError(err)
	s.Equal(int64(25), count)

	all, err := s.repo.ListTransactionsFromID(ctx, 0, 100)
	s.Require().NoError(err)
	s.Require().Len(all, 25)
	for i := 1; i < len(all); i++ {
		s.Greater(all[i].ID, all[i-1].ID)
	}

	firstID, err := s.repo.FindTransactionIDAtOffset(ctx, 0)
	s.Require().NoError(err)
	s.Equal(all[0].ID, firstID)

	tenthID, err := s.repo.FindTransactionIDAtOffset(ctx, 10)
	s.Require().NoError(err)
	s.Equal(all[10].ID, tenthID)

	lastID, err := s.repo.FindTransactionIDAtOffset(ctx, 24)
	s.Require().NoError(err)
	s.Equal(all[24].ID, lastID)

	_, err = s.repo.FindTransactionIDAtOffset(ctx, 25)
	s.ErrorIs(err, apperrors.ErrNotFound)

	page, err := s.repo.ListTransactionsFromID(ctx, tenthID, 5)
	s.Require().NoError(err)
	s.Require().Len(page, 5)
	s.Equal(all[10].ID, page[0].ID)
	s.Equal(all[14].ID, page[4].ID)

	tail, err := s.repo.ListTransactionsFromID(ctx, all[22].ID, 10)
	s.Require().NoError(err)
	s.Len(tail, 3)

	past, err := s.repo.ListTransactionsFromID(ctx, all[24].ID+1, 10)
	s.Require().NoError(err)
	s.Empty(past)
}

func (s *TransactionRepositorySuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.repo.CountTransactions(ctx)
	s.Error(err)

	_, err = s.repo.ListTransactionsFromID(ctx, 1, 10)
	s.Error(err)
}

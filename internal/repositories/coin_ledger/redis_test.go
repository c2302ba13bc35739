package coin_ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/repositories/gift_event"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	gifts   gift_event.Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	gifts, err := gift_event.NewRedis(&gift_event.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.gifts = gifts

	s.testNow = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) credit(userID string, amount int64) {
	_, err := s.repo.Credit(context.Background(), &CreditInput{
		UserID:    userID,
		Amount:    amount,
		Reference: "test",
		CreatedAt: s.testNow,
	})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) gift(value int64) *models.GiftEvent {
	return &models.GiftEvent{
		ID:          uuid.NewString(),
		StreamID:    "stream-a",
		SenderID:    "viewer",
		RecipientID: "host",
		GiftID:      "rose",
		UnitValue:   value,
		Quantity:    1,
		TotalValue:  value,
		CreatedAt:   s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) sum(userID string, compartment models.WalletCompartment) int64 {
	out, err := s.repo.ListTransactions(context.Background(), &ListTransactionsInput{UserID: userID})
	s.Require().NoError(err)

	var total int64
	for _, t := range out.Transactions {
		if t.Compartment == compartment {
			total += t.Amount
		}
	}
	return total
}

func (s *RedisRepositoryTestSuite) TestTransferMovesCoinsAndRecordsGift() {
	ctx := context.Background()
	s.credit("viewer", 1000)

	event := s.gift(300)
	out, err := s.repo.Transfer(ctx, &TransferInput{Event: event})
	s.Require().NoError(err)
	s.False(out.Replayed)
	s.Equal(int64(700), out.SenderBalance)

	viewer, err := s.repo.GetWallet(ctx, &GetWalletInput{UserID: "viewer"})
	s.Require().NoError(err)
	s.Equal(int64(700), viewer.Default)
	s.Equal(int64(0), viewer.Earned)

	host, err := s.repo.GetWallet(ctx, &GetWalletInput{UserID: "host"})
	s.Require().NoError(err)
	s.Equal(int64(0), host.Default)
	s.Equal(int64(300), host.Earned)

	recorded, err := s.gifts.GetGift(ctx, &gift_event.GetGiftInput{GiftID: event.ID})
	s.Require().NoError(err)
	s.Equal(int64(300), recorded.TotalValue)

	listed, err := s.gifts.ListByStreams(ctx, &gift_event.ListByStreamsInput{StreamIDs: []string{"stream-a"}})
	s.Require().NoError(err)
	s.Len(listed.Events, 1)

	// Balances equal the sum of their transactions
	s.Equal(viewer.Default, s.sum("viewer", models.WalletCompartmentDefault))
	s.Equal(host.Earned, s.sum("host", models.WalletCompartmentEarned))

	txns, err := s.repo.ListTransactions(ctx, &ListTransactionsInput{UserID: "viewer", Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(txns.Transactions, 1)
	s.Equal(models.CoinTransactionPurchaseGift, txns.Transactions[0].Type)
	s.Equal(int64(-300), txns.Transactions[0].Amount)
	s.Equal(event.ID, txns.Transactions[0].GiftEventID)
	s.Equal("host", txns.Transactions[0].CounterpartyID)
}

func (s *RedisRepositoryTestSuite) TestInsufficientFundsMutatesNothing() {
	ctx := context.Background()
	s.credit("viewer", 100)

	event := s.gift(500)
	_, err := s.repo.Transfer(ctx, &TransferInput{Event: event})
	s.ErrorIs(err, ErrInsufficientFunds)

	viewer, err := s.repo.GetWallet(ctx, &GetWalletInput{UserID: "viewer"})
	s.Require().NoError(err)
	s.Equal(int64(100), viewer.Default)

	host, err := s.repo.GetWallet(ctx, &GetWalletInput{UserID: "host"})
	s.Require().NoError(err)
	s.Equal(int64(0), host.Earned)

	_, err = s.gifts.GetGift(ctx, &gift_event.GetGiftInput{GiftID: event.ID})
	s.ErrorIs(err, gift_event.ErrGiftNotFound)

	txns, err := s.repo.ListTransactions(ctx, &ListTransactionsInput{UserID: "host"})
	s.Require().NoError(err)
	s.Empty(txns.Transactions)
}

func (s *RedisRepositoryTestSuite) TestUnknownSenderHasNoFunds() {
	_, err := s.repo.Transfer(context.Background(), &TransferInput{Event: s.gift(1)})
	s.ErrorIs(err, ErrInsufficientFunds)
}

func (s *RedisRepositoryTestSuite) TestIdempotentRetryReturnsOriginal() {
	ctx := context.Background()
	s.credit("viewer", 1000)

	first := s.gift(100)
	first.IdempotencyKey = "tap-1"
	out, err := s.repo.Transfer(ctx, &TransferInput{Event: first})
	s.Require().NoError(err)
	s.False(out.Replayed)

	retry := s.gift(100)
	retry.IdempotencyKey = "tap-1"
	out, err = s.repo.Transfer(ctx, &TransferInput{Event: retry})
	s.Require().NoError(err)
	s.True(out.Replayed)
	s.Equal(first.ID, out.Event.ID)
	s.Equal(int64(900), out.SenderBalance)

	viewer, err := s.repo.GetWallet(ctx, &GetWalletInput{UserID: "viewer"})
	s.Require().NoError(err)
	s.Equal(int64(900), viewer.Default)
}

func (s *RedisRepositoryTestSuite) TestTransferValidation() {
	ctx := context.Background()

	_, err := s.repo.Transfer(ctx, nil)
	s.Error(err)

	self := s.gift(10)
	self.RecipientID = self.SenderID
	_, err = s.repo.Transfer(ctx, &TransferInput{Event: self})
	s.Error(err)

	zero := s.gift(0)
	_, err = s.repo.Transfer(ctx, &TransferInput{Event: zero})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestConcurrentTransfersNeverOverdraw() {
	ctx := context.Background()
	s.credit("viewer", 1000)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.Transfer(ctx, &TransferInput{Event: s.gift(100)})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(10, accepted)

	viewer, err := s.repo.GetWallet(ctx, &GetWalletInput{UserID: "viewer"})
	s.Require().NoError(err)
	s.Equal(int64(0), viewer.Default)

	host, err := s.repo.GetWallet(ctx, &GetWalletInput{UserID: "host"})
	s.Require().NoError(err)
	s.Equal(int64(1000), host.Earned)
}

func (s *RedisRepositoryTestSuite) TestCreditValidation() {
	_, err := s.repo.Credit(context.Background(), &CreditInput{UserID: "viewer", Amount: 0})
	s.Error(err)
}

package coin_ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/repositories/gift_event"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	balanceKeyPrefix      = "coin_balance:"
	transactionsKeyPrefix = "coin_txns:"
	idempotencyKeyPrefix  = "gift_idem:"
)

const (
	transferCommitted = 1
	transferReplayed  = 2
	transferRejected  = 0
)

// transferScript runs the whole transfer inside Redis so no other command interleaves.
//
// KEYS: idempotency, sender default, recipient earned, sender txns, recipient txns, gift doc, stream index
// ARGV: amount, debit json, credit json, gift json, gift id, score, use idempotency
var transferScript = redis.NewScript(`
if ARGV[7] == "1" then
	local existing = redis.call("GET", KEYS[1])
	if existing then
		return {2, existing}
	end
end

local amount = tonumber(ARGV[1])
local balance = tonumber(redis.call("GET", KEYS[2]) or "0")
if balance < amount then
	return {0, tostring(balance)}
end

local remaining = redis.call("DECRBY", KEYS[2], amount)
redis.call("INCRBY", KEYS[3], amount)
redis.call("RPUSH", KEYS[4], ARGV[2])
redis.call("RPUSH", KEYS[5], ARGV[3])
redis.call("SET", KEYS[6], ARGV[4])
redis.call("ZADD", KEYS[7], ARGV[6], ARGV[5])
if ARGV[7] == "1" then
	redis.call("SET", KEYS[1], ARGV[5])
end

return {1, tostring(remaining)}
`)

// Config holds configuration for the Redis coin ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed coin ledger repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func balanceKey(userID string, compartment models.WalletCompartment) string {
	return fmt.Sprintf("%s%s:%s", balanceKeyPrefix, userID, compartment)
}

func transactionsKey(userID string) string {
	return transactionsKeyPrefix + userID
}

func idempotencyKey(senderID, key string) string {
	return fmt.Sprintf("%s%s:%s", idempotencyKeyPrefix, senderID, key)
}

// Transfer commits a gift through the transfer script
func (r *redisRepository) Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error) {
	if err := validateTransfer(input); err != nil {
		return nil, err
	}

	event := input.Event
	debit, credit := transferEntries(event, uuid.New().String(), uuid.New().String())

	debitJSON, err := json.Marshal(debit)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal debit: %w", err)
	}

	creditJSON, err := json.Marshal(credit)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credit: %w", err)
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gift event: %w", err)
	}

	useIdempotency := "0"
	if event.IdempotencyKey != "" {
		useIdempotency = "1"
	}

	keys := []string{
		idempotencyKey(event.SenderID, event.IdempotencyKey),
		balanceKey(event.SenderID, models.WalletCompartmentDefault),
		balanceKey(event.RecipientID, models.WalletCompartmentEarned),
		transactionsKey(event.SenderID),
		transactionsKey(event.RecipientID),
		gift_event.GiftKey(event.ID),
		gift_event.StreamIndexKey(event.StreamID),
	}

	res, err := transferScript.Run(ctx, r.client, keys,
		event.TotalValue,
		debitJSON,
		creditJSON,
		eventJSON,
		event.ID,
		event.CreatedAt.UnixMilli(),
		useIdempotency,
	).Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to run transfer: %w", err)
	}

	if len(res) != 2 {
		return nil, fmt.Errorf("unexpected transfer result: %v", res)
	}

	status, _ := res[0].(int64)
	value, _ := res[1].(string)

	switch status {
	case transferRejected:
		return nil, ErrInsufficientFunds
	case transferReplayed:
		return r.replay(ctx, value, event.SenderID)
	case transferCommitted:
		remaining, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse remaining balance: %w", err)
		}
		return &TransferOutput{
			Event:         event,
			SenderBalance: remaining,
		}, nil
	}

	return nil, fmt.Errorf("unexpected transfer status %d", status)
}

func (r *redisRepository) replay(ctx context.Context, giftID, senderID string) (*TransferOutput, error) {
	eventJSON, err := r.client.Get(ctx, gift_event.GiftKey(giftID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load original gift %s: %w", giftID, err)
	}

	var original models.GiftEvent
	if err := json.Unmarshal([]byte(eventJSON), &original); err != nil {
		return nil, fmt.Errorf("failed to unmarshal original gift: %w", err)
	}

	balance, err := r.balance(ctx, senderID, models.WalletCompartmentDefault)
	if err != nil {
		return nil, err
	}

	return &TransferOutput{
		Event:         &original,
		Replayed:      true,
		SenderBalance: balance,
	}, nil
}

// Credit tops up the default compartment and appends the matching entry atomically
func (r *redisRepository) Credit(ctx context.Context, input *CreditInput) (*CreditOutput, error) {
	if err := validateCredit(input); err != nil {
		return nil, err
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	txn := &models.CoinTransaction{
		ID:          uuid.New().String(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Compartment: models.WalletCompartmentDefault,
		Type:        models.CoinTransactionPurchaseCoins,
		Reference:   input.Reference,
		CreatedAt:   createdAt,
	}

	txnJSON, err := json.Marshal(txn)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.IncrBy(ctx, balanceKey(input.UserID, models.WalletCompartmentDefault), input.Amount)
		pipe.RPush(ctx, transactionsKey(input.UserID), txnJSON)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to credit coins: %w", err)
	}

	wallet, err := r.GetWallet(ctx, &GetWalletInput{UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	return &CreditOutput{
		Transaction: txn,
		Wallet:      wallet,
	}, nil
}

// GetWallet reads both compartments, missing keys are zero
func (r *redisRepository) GetWallet(ctx context.Context, input *GetWalletInput) (*models.Wallet, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	values, err := r.client.MGet(ctx,
		balanceKey(input.UserID, models.WalletCompartmentDefault),
		balanceKey(input.UserID, models.WalletCompartmentEarned),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	wallet := &models.Wallet{UserID: input.UserID}
	if wallet.Default, err = parseBalance(values[0]); err != nil {
		return nil, err
	}
	if wallet.Earned, err = parseBalance(values[1]); err != nil {
		return nil, err
	}

	return wallet, nil
}

// ListTransactions returns entries newest first
func (r *redisRepository) ListTransactions(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	start := int64(0)
	if input.Limit > 0 {
		start = -int64(input.Limit)
	}

	raw, err := r.client.LRange(ctx, transactionsKey(input.UserID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	txns := make([]*models.CoinTransaction, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var txn models.CoinTransaction
		if err := json.Unmarshal([]byte(raw[i]), &txn); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
		}
		txns = append(txns, &txn)
	}

	return &ListTransactionsOutput{
		Transactions: txns,
	}, nil
}

func (r *redisRepository) balance(ctx context.Context, userID string, compartment models.WalletCompartment) (int64, error) {
	v, err := r.client.Get(ctx, balanceKey(userID, compartment)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return v, nil
}

func parseBalance(v interface{}) (int64, error) {
	if v == nil {
		return 0, nil
	}

	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected balance value %v", v)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse balance: %w", err)
	}

	return n, nil
}

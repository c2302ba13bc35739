package gift_event

const (
	// Key prefixes for Redis
	giftKeyPrefix        = "gift:"
	streamGiftsKeyPrefix = "gifts_by_stream:"
)

// GiftKey is the Redis key holding a gift event document.
// The coin ledger writes it from inside its transfer script.
func GiftKey(giftID string) string {
	return giftKeyPrefix + giftID
}

// StreamIndexKey is the Redis sorted set of gift IDs sent on a stream, scored by unix milliseconds
func StreamIndexKey(streamID string) string {
	return streamGiftsKeyPrefix + streamID
}

package battle

// BattleError is a custom error type for battle errors
type BattleError string

// Error implements the error interface
func (e BattleError) Error() string {
	return string(e)
}

const (
	ErrBattleNotFound      BattleError = "battle not found"
	ErrStreamNotLive       BattleError = "host stream is not live"
	ErrNotStreamOwner      BattleError = "only the stream owner can start a battle"
	ErrBattleAlreadyActive BattleError = "a battle is already pending or active on this stream"
	ErrInvalidOpponent     BattleError = "opponent must be another user"
	ErrNotOpponent         BattleError = "only the invited opponent can accept"
	ErrNotParticipant      BattleError = "only battle participants can do that"
	ErrInvalidState        BattleError = "battle is not in a valid state for this action"
	ErrBattleNotActive     BattleError = "battle is not active"
	ErrInvalidRecipient    BattleError = "recipient is not in this battle"
	ErrInvalidConfig       BattleError = "invalid battle config"
	ErrBattleBusy          BattleError = "battle is busy, try again"
	ErrNilConfig           BattleError = "config cannot be nil"
	ErrNilBattleRepo       BattleError = "battle repository cannot be nil"
	ErrNilStreamRepo       BattleError = "stream repository cannot be nil"
	ErrNilGiftService      BattleError = "gift service cannot be nil"
	ErrNilScoring          BattleError = "scoring service cannot be nil"
	ErrNilLocker           BattleError = "locker cannot be nil"
	ErrNilScheduler        BattleError = "scheduler cannot be nil"
	ErrNilBroadcaster      BattleError = "broadcaster cannot be nil"
	ErrNilClock            BattleError = "clock cannot be nil"
	ErrNilUUIDGenerator    BattleError = "UUID generator cannot be nil"
)

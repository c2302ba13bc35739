package messaging

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

type service struct {
	// rand is not safe for concurrent use on its own
	mu   sync.Mutex
	rand *rand.Rand
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	var r *rand.Rand
	if cfg != nil {
		r = cfg.Rand
	}

	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &service{rand: r}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

func orSomeone(name string) string {
	if name == "" {
		return "Someone"
	}
	return name
}

// GetInvitationMessage returns the notice sent to an invited opponent
func (s *service) GetInvitationMessage(ctx context.Context, input *GetInvitationMessageInput) (*GetInvitationMessageOutput, error) {
	challenger := orSomeone(input.ChallengerName)

	messages := []string{
		"%s wants to battle you! Accept before your fans notice you hesitated.",
		"%s just threw down the gauntlet. Time to rally your viewers.",
		"A wild %s appears and challenges you to a PK battle!",
		"%s thinks their fans can outgift yours. Prove them wrong.",
	}

	format := "%d round of %s"
	if input.Rounds != 1 {
		format = "%d rounds of %s"
	}
	rules := fmt.Sprintf(format, input.Rounds, input.RoundDuration.Round(time.Second))

	return &GetInvitationMessageOutput{
		Title:   "Battle invitation",
		Message: fmt.Sprintf(s.pick(messages), challenger) + " (" + rules + ")",
		Tone:    ToneHype,
	}, nil
}

// GetRoundResultMessage returns the notice for a closed round
func (s *service) GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error) {
	score := fmt.Sprintf("%s %d : %d %s", orSomeone(input.ChallengerName), input.ChallengerScore, input.OpponentScore, orSomeone(input.OpponentName))
	title := fmt.Sprintf("Round %d", input.Round)

	if input.WinnerName == "" {
		messages := []string{
			"Dead even! Nobody takes this one.",
			"A perfect tie. The fans could not be separated.",
			"Tied up. Next round decides who blinks first.",
		}
		return &GetRoundResultMessageOutput{
			Title:   title + " is a tie",
			Message: s.pick(messages) + " " + score,
		}, nil
	}

	messages := []string{
		"%s takes the round!",
		"Round goes to %s. The gifts kept coming.",
		"%s's fans showed up and won the round.",
	}

	return &GetRoundResultMessageOutput{
		Title:   title + " result",
		Message: fmt.Sprintf(s.pick(messages), input.WinnerName) + " " + score,
	}, nil
}

// GetBattleResultMessage returns the notice for a finished battle
func (s *service) GetBattleResultMessage(ctx context.Context, input *GetBattleResultMessageInput) (*GetBattleResultMessageOutput, error) {
	rounds := fmt.Sprintf("Rounds %d : %d, %d coins gifted in total.", input.ChallengerWins, input.OpponentWins, input.TotalCoins)

	switch {
	case input.WinnerName == "":
		messages := []string{
			"It's a draw! Nobody could pull ahead.",
			"Battle over and nobody won. Rematch?",
			"A draw. Both sides gave it everything.",
		}
		return &GetBattleResultMessageOutput{
			Title:   "Battle ended in a draw",
			Message: s.pick(messages) + " " + rounds,
			Tone:    ToneNeutral,
		}, nil

	case input.ReaderName != "" && input.ReaderName == input.WinnerName:
		messages := []string{
			"You won the battle! Thank your fans, they earned it.",
			"Victory! Your viewers carried you all the way.",
			"Winner winner! That was a battle to remember.",
		}
		return &GetBattleResultMessageOutput{
			Title:   "You won!",
			Message: s.pick(messages) + " " + rounds,
			Tone:    ToneCelebration,
		}, nil

	case input.ReaderName != "":
		messages := []string{
			"%s won this one. Next time your fans will be ready.",
			"Tough battle! %s came out on top.",
			"%s edged it. Shake it off and challenge them again.",
		}
		return &GetBattleResultMessageOutput{
			Title:   "Battle over",
			Message: fmt.Sprintf(s.pick(messages), input.WinnerName) + " " + rounds,
			Tone:    ToneEncouraging,
		}, nil
	}

	return &GetBattleResultMessageOutput{
		Title:   "Battle over",
		Message: fmt.Sprintf("%s won the battle! %s", input.WinnerName, rounds),
		Tone:    ToneCelebration,
	}, nil
}

// GetErrorMessage returns a user-friendly message for an API error code
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	tone := input.PreferredTone
	if tone == "" {
		tone = ToneNeutral
	}

	var messages []string
	switch input.ErrorType {
	case "insufficient_funds":
		messages = []string{
			"Not enough coins for that gift. Top up and try again.",
			"Your wallet is a little light for that one.",
		}
	case "rate_limited":
		messages = []string{
			"Whoa, easy on the gift button! Try again in a moment.",
			"Too many gifts too fast. Give it a second.",
		}
	case "battle_not_active":
		messages = []string{
			"This battle is not accepting gifts right now.",
			"The battle isn't live, so that gift can't count toward it.",
		}
	case "battle_already_active":
		messages = []string{
			"There's already a battle on this stream. Finish that one first.",
		}
	case "stream_not_live":
		messages = []string{
			"You need to be live to start a battle.",
		}
	case "not_opponent":
		messages = []string{
			"Only the invited streamer can accept this battle.",
		}
	case "invalid_recipient":
		messages = []string{
			"Gifts in a battle have to go to one of the two streamers.",
		}
	case "battle_busy":
		messages = []string{
			"The battle is busy right now. Try again.",
		}
	default:
		messages = []string{
			"Something went wrong. Please try again.",
		}
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

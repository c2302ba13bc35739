package notifications

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/pkbattle/internal/models"
	profileRepo "github.com/KirkDiggler/pkbattle/internal/repositories/profile"
	"github.com/KirkDiggler/pkbattle/internal/services/messaging"
)

// notice is one rendered message for one user
type notice struct {
	userID  string
	title   string
	message string
	color   int
}

const (
	colorInvite = 0x5865f2
	colorRound  = 0xfee75c
	colorWin    = 0x00ff00
	colorLoss   = 0xed4245
	colorDraw   = 0x99aab5
)

// recipients returns who hears about a notification
func recipients(input *NotifyInput) []string {
	if input.Kind == KindInvitation {
		return []string{input.Battle.OpponentID}
	}
	return []string{input.Battle.ChallengerID, input.Battle.OpponentID}
}

// loadProfiles returns display data for both participants; missing profiles fall back to user IDs
func loadProfiles(ctx context.Context, repo profileRepo.Repository, b *models.Battle) map[string]*models.Profile {
	profiles := map[string]*models.Profile{}
	if repo != nil {
		out, err := repo.GetProfiles(ctx, &profileRepo.GetProfilesInput{UserIDs: []string{b.ChallengerID, b.OpponentID}})
		if err == nil {
			profiles = out.Profiles
		}
	}

	for _, id := range []string{b.ChallengerID, b.OpponentID} {
		if p, ok := profiles[id]; !ok || p == nil {
			profiles[id] = &models.Profile{ID: id, DisplayName: id}
		} else if p.DisplayName == "" {
			p.DisplayName = id
		}
	}

	return profiles
}

func compose(ctx context.Context, msgs messaging.Service, input *NotifyInput, profiles map[string]*models.Profile) ([]notice, error) {
	b := input.Battle
	challenger := profiles[b.ChallengerID].DisplayName
	opponent := profiles[b.OpponentID].DisplayName

	nameOf := func(userID string) string {
		if userID == "" {
			return ""
		}
		return profiles[userID].DisplayName
	}

	var notices []notice
	for _, userID := range recipients(input) {
		switch input.Kind {
		case KindInvitation:
			out, err := msgs.GetInvitationMessage(ctx, &messaging.GetInvitationMessageInput{
				ChallengerName: challenger,
				Rounds:         b.Config.Rounds,
				RoundDuration:  b.Config.RoundDuration,
			})
			if err != nil {
				return nil, err
			}
			notices = append(notices, notice{userID: userID, title: out.Title, message: out.Message, color: colorInvite})

		case KindRoundResult:
			if input.Round == nil {
				return nil, fmt.Errorf("round result for battle %s has no round", b.ID)
			}
			out, err := msgs.GetRoundResultMessage(ctx, &messaging.GetRoundResultMessageInput{
				Round:           input.Round.Round,
				WinnerName:      nameOf(input.Round.WinnerID),
				ChallengerName:  challenger,
				OpponentName:    opponent,
				ChallengerScore: input.Round.Challenger.Score,
				OpponentScore:   input.Round.Opponent.Score,
			})
			if err != nil {
				return nil, err
			}
			notices = append(notices, notice{userID: userID, title: out.Title, message: out.Message, color: colorRound})

		case KindBattleResult:
			out, err := msgs.GetBattleResultMessage(ctx, &messaging.GetBattleResultMessageInput{
				ReaderName:     nameOf(userID),
				WinnerName:     nameOf(b.WinnerID),
				ChallengerName: challenger,
				OpponentName:   opponent,
				ChallengerWins: b.ChallengerRoundWins,
				OpponentWins:   b.OpponentRoundWins,
				TotalCoins:     b.TotalGiftValue,
			})
			if err != nil {
				return nil, err
			}

			color := colorLoss
			switch b.WinnerID {
			case "":
				color = colorDraw
			case userID:
				color = colorWin
			}
			notices = append(notices, notice{userID: userID, title: out.Title, message: out.Message, color: color})

		default:
			return nil, fmt.Errorf("unknown notification kind %q", input.Kind)
		}
	}

	return notices, nil
}

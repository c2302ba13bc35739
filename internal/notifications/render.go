package notifications

import (
	"fmt"

	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/bwmarrin/discordgo"
)

// renderNotice builds the embed for a notice
func renderNotice(b *models.Battle, nt notice) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       nt.title,
		Description: nt.message,
		Color:       nt.color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Battle " + b.Token,
		},
	}

	if b.Phase == models.BattlePhaseInvitation {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Rounds", Value: fmt.Sprintf("%d", b.Config.Rounds), Inline: true},
			{Name: "Round length", Value: b.Config.RoundDuration.String(), Inline: true},
		}
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Score", Value: fmt.Sprintf("%d : %d", b.ChallengerTotal.Score, b.OpponentTotal.Score), Inline: true},
		{Name: "Rounds won", Value: fmt.Sprintf("%d : %d", b.ChallengerRoundWins, b.OpponentRoundWins), Inline: true},
		{Name: "Coins gifted", Value: fmt.Sprintf("%d", b.TotalGiftValue), Inline: true},
	}

	return embed
}

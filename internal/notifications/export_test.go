package notifications

// Test-only access to unexported identifiers for the external test package.

type DiscordNotifier = discordNotifier

const (
	ColorWin  = colorWin
	ColorLoss = colorLoss
)

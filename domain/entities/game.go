package entities

import (
	"fmt"
	"strings"
)

// Game identifies a supported game for stats tracking and party leaderboards
type Game string

const (
	GameLeagueOfLegends Game = "lol"
	GameValorant        Game = "valorant"
)

// ParseGame converts a raw game identifier into a Game
func ParseGame(raw string) (Game, error) {
	switch Game(strings.ToLower(strings.TrimSpace(raw))) {
	case GameLeagueOfLegends:
		return GameLeagueOfLegends, nil
	case GameValorant:
		return GameValorant, nil
	default:
		return "", fmt.Errorf("unsupported game: %q", raw)
	}
}

// IsValid checks whether the game is one of the supported games
func (g Game) IsValid() bool {
	return g == GameLeagueOfLegends || g == GameValorant
}

// DisplayName returns a user-friendly name for the game
func (g Game) DisplayName() string {
	switch g {
	case GameLeagueOfLegends:
		return "League of Legends"
	case GameValorant:
		return "Valorant"
	default:
		return string(g)
	}
}

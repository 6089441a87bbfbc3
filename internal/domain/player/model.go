package player

import (
	"fmt"
	"strings"
)

// Position is one of the four roster slots every pool team must fill.
type Position string

const (
	PositionQB Position = "QB"
	PositionWR Position = "WR"
	PositionRB Position = "RB"
	PositionTE Position = "TE"
)

// Positions lists the required slots in display order.
func Positions() []Position {
	return []Position{PositionQB, PositionWR, PositionRB, PositionTE}
}

func ParsePosition(v string) (Position, error) {
	switch Position(strings.ToUpper(strings.TrimSpace(v))) {
	case PositionQB:
		return PositionQB, nil
	case PositionWR:
		return PositionWR, nil
	case PositionRB:
		return PositionRB, nil
	case PositionTE:
		return PositionTE, nil
	default:
		return "", fmt.Errorf("invalid position %q: valid values are QB, WR, RB, TE", v)
	}
}

// Player is provider-owned reference data; this system never mutates it.
type Player struct {
	ID       string
	Name     string
	Team     string
	Position Position
}

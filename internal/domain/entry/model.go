package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/player"
)

// PlayerPick is the snapshot of a player taken at submission time.
// Name and team are denormalized so entries stay renderable even when
// the roster provider is down.
type PlayerPick struct {
	ID   string
	Name string
	Team string
}

func (p PlayerPick) validate(slot player.Position) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%s player id is required", slot)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%s player name is required", slot)
	}
	if strings.TrimSpace(p.Team) == "" {
		return fmt.Errorf("%s player team is required", slot)
	}
	return nil
}

// TeamEntry is one submitted team. At most one entry may exist per
// (owner email, team number) pair.
type TeamEntry struct {
	ID         int64
	Email      string
	UserID     int64
	TeamNumber int
	QB         PlayerPick
	WR         PlayerPick
	RB         PlayerPick
	TE         PlayerPick
	CreatedAt  time.Time
}

func (e TeamEntry) ValidateBasic(maxTeamNumber int) error {
	if !strings.Contains(e.Email, "@") {
		return fmt.Errorf("a valid email address is required")
	}
	if e.TeamNumber < 1 || e.TeamNumber > maxTeamNumber {
		return fmt.Errorf("team number must be between 1 and %d", maxTeamNumber)
	}
	for pos, pick := range e.Picks() {
		if err := pick.validate(pos); err != nil {
			return err
		}
	}
	return nil
}

// Picks maps each roster slot to its selected player.
func (e TeamEntry) Picks() map[player.Position]PlayerPick {
	return map[player.Position]PlayerPick{
		player.PositionQB: e.QB,
		player.PositionWR: e.WR,
		player.PositionRB: e.RB,
		player.PositionTE: e.TE,
	}
}

// PlayerIDs returns the four picked player IDs in slot order.
func (e TeamEntry) PlayerIDs() []string {
	return []string{e.QB.ID, e.WR.ID, e.RB.ID, e.TE.ID}
}

// NormalizedEmail is the owner key: lowercased, trimmed. Two entries
// from "A@x.com" and "a@x.com" belong to the same participant.
func (e TeamEntry) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(e.Email))
}

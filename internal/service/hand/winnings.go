package hand

import (
	"poker-hand-service/internal/model"
	appErr "poker-hand-service/pkg/errors"
)

const fixedLoss = 100

// CalculateWinnings maps each participant to a signed net chip result.
// Placeholder algorithm: the first participant in submission order is
// treated as the winner, every other participant loses a fixed 100
// chips and the winner collects the sum, so the results always balance
// to zero. Hole cards and the action sequence are ignored.
//
// TODO: replace with a real showdown evaluation built on the
// ParseActionSequence output.
func CalculateWinnings(stacks model.StackSettings, holeCards map[string][]string, actionSequence string) (map[string]int64, error) {
	players := stacks.Order
	if len(players) == 0 {
		return nil, appErr.ErrNoParticipants
	}

	winnings := make(map[string]int64, len(players))
	var totalWin int64
	for _, player := range players[1:] {
		winnings[player] = -fixedLoss
		totalWin += fixedLoss
	}
	winnings[players[0]] = totalWin

	return winnings, nil
}

package dice

import (
	"sort"

	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// NegativeTransform maps a nominal dice count to the count actually rolled
// and its policy. Zero and negative pools roll extra dice and keep the lowest.
func NegativeTransform(nominal int) (int, Policy) {
	if nominal <= 0 {
		return 2 - nominal, PolicyKeepLowest
	}
	return nominal, PolicyKeepHighestSum
}

// MergeBonusDice injects the dice of bonus into base and re-evaluates base.
//
// A keep-lowest base gains enough dice to offset its penalty: the lowest
// bonus+1 base dice are dropped before the bonus dice are added, and when the
// bonus outnumbers the penalty the result becomes a keep-highest-sum roll of
// the strongest remaining bonus dice.
func MergeBonusDice(base, bonus *Roll) error {
	if base == nil || bonus == nil {
		return ovaerr.InvalidBonusMergef("bonus dice need a base roll")
	}
	if len(bonus.Dice) == 0 {
		return ovaerr.InvalidBonusMergef("bonus roll has no dice")
	}

	bonusDice := make([]Die, len(bonus.Dice))
	copy(bonusDice, bonus.Dice)

	if base.Policy != PolicyKeepLowest {
		base.Dice = append(base.Dice, bonusDice...)
		base.Evaluate()
		return nil
	}

	diff := len(base.Dice) - len(bonusDice)
	if diff <= 1 {
		base.Policy = PolicyKeepHighestSum
	}

	if diff >= 1 {
		sort.SliceStable(base.Dice, func(i, j int) bool {
			return base.Dice[i].Face < base.Dice[j].Face
		})
		drop := len(bonusDice) + 1
		if drop > len(base.Dice) {
			drop = len(base.Dice)
		}
		base.Dice = append(base.Dice[drop:], bonusDice...)
	} else {
		// every base die is spent; the surplus bonus dice form the new pool
		keep := 2 - len(base.Dice) + len(bonusDice)
		if keep < 1 {
			keep = 1
		}
		if keep > len(bonusDice) {
			keep = len(bonusDice)
		}
		sort.SliceStable(bonusDice, func(i, j int) bool {
			return bonusDice[i].Face < bonusDice[j].Face
		})
		base.Dice = bonusDice[len(bonusDice)-keep:]
	}

	base.Evaluate()
	return nil
}

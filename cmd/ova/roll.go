package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ova-combat/internal/dice"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

var (
	rollModifier   int
	rollSize       string
	rollMultiplier int
)

var rollCmd = &cobra.Command{
	Use:   "roll <dice>",
	Short: "Roll a dice pool and keep the best matching set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := strconv.Atoi(args[0])
		if err != nil {
			return ovaerr.InvalidArgumentf("dice must be a whole number, got %q", args[0])
		}

		size := dice.Size(rollSize)
		switch size {
		case dice.SizeDisadvantage, dice.SizeNormal, dice.SizeAdvantage:
		default:
			return ovaerr.InvalidArgumentf("unknown size %q", rollSize)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		req := dice.NewRequest(base)
		req.Modifier = rollModifier
		req.Size = size
		req.Multiplier = rollMultiplier

		roll, err := req.Roll(newRoller(cfg.Dice))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), describeRoll(roll))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rollCmd)
	rollCmd.Flags().IntVarP(&rollModifier, "modifier", "m", 0, "Dice added to the pool")
	rollCmd.Flags().StringVarP(&rollSize, "size", "s", string(dice.SizeNormal), "Size against the opponent: disadvantage, normal or advantage")
	rollCmd.Flags().IntVarP(&rollMultiplier, "multiplier", "x", dice.MultiplierSingle, "Pool multiplier")
}

// describeRoll shows every face, bracketing the ones that count
func describeRoll(r *dice.Roll) string {
	if r == nil || len(r.Dice) == 0 {
		return "no dice = 0"
	}

	faces := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		if d.Active {
			faces[i] = fmt.Sprintf("[%d]", d.Face)
		} else {
			faces[i] = strconv.Itoa(d.Face)
		}
	}

	out := fmt.Sprintf("%s = %d", strings.Join(faces, " "), r.Total)
	if r.Policy == dice.PolicyKeepLowest {
		out += " (penalty)"
	}
	return out
}

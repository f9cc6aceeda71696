// Package settle handles the settle command
package settle

import (
	"fmt"

	"fjacquet/debtsolver/cmd/root"
	"fjacquet/debtsolver/internal/logging"

	"github.com/spf13/cobra"
)

var (
	groupSize       int
	maxCombinations int
)

// Cmd represents the settle command
var Cmd = &cobra.Command{
	Use:   "settle",
	Short: "Compute the payments that settle a journal",
	Long: `Read a journal of debts, net every party to a single balance and print
the payments that bring every balance to zero. Groups of parties whose
balances cancel out are settled among themselves first.`,
	RunE: settleFunc,
}

func init() {
	Cmd.Flags().IntVarP(&groupSize, "group-size", "g", 0, "Largest zero-sum group to search for (0 = all sizes)")
	Cmd.Flags().IntVar(&maxCombinations, "max-combinations", 0, "Combination budget for the group search (0 = unlimited)")
}

func settleFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}
	j, err := root.LoadJournal(c, root.SharedFlags)
	if err != nil {
		return err
	}

	options := c.GetSolver().Options()
	if cmd.Flags().Changed("group-size") {
		options.MaxGroupSize = groupSize
	}
	if cmd.Flags().Changed("max-combinations") {
		options.MaxCombinations = maxCombinations
	}

	result, err := c.GetSolver().SettleWith(j, options)
	if err != nil {
		return err
	}

	if root.SharedFlags.Output != "" {
		if err := c.WritePayments(root.SharedFlags.Output, result.Payments); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		for _, p := range result.Payments {
			if _, err := fmt.Fprintln(out, p.String()); err != nil {
				return err
			}
		}
	}

	c.GetLogger().Info("Settlement completed successfully!",
		logging.F(logging.FieldRunID, result.RunID),
		logging.F(logging.FieldPayments, len(result.Payments)))
	return nil
}

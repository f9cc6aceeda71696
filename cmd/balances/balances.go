// Package balances handles the balances command
package balances

import (
	"fmt"
	"text/tabwriter"

	"fjacquet/debtsolver/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the balances command
var Cmd = &cobra.Command{
	Use:   "balances",
	Short: "Show the net balance of every party in a journal",
	Long: `Read a journal of debts and print each party's net balance without
settling. Negative balances are owed by the party, positive ones are owed
to it.`,
	RunE: balancesFunc,
}

func balancesFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}
	j, err := root.LoadJournal(c, root.SharedFlags)
	if err != nil {
		return err
	}

	entries, err := c.GetSolver().Balances(j)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(w, "PARTY\tBALANCE\t"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t\n", e.Party, e.Balance.Format()); err != nil {
			return err
		}
	}
	return w.Flush()
}

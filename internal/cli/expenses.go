package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(expensesCmd)
}

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "List shared expenses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		expenses, err := client.Expenses(ctx)
		if err != nil {
			return err
		}

		if len(expenses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No shared expenses.")
			return nil
		}

		rows := make([][]string, 0, len(expenses))
		for _, e := range expenses {
			rows = append(rows, []string{
				e.Date.Format("2006-01-02"),
				e.Description,
				formatCents(e.AmountCents),
				string(e.Category),
				string(e.Status),
				e.PaidBy,
				fmt.Sprintf("%d/%d", e.Split.Parent1, e.Split.Parent2),
			})
		}
		return writeTable(cmd.OutOrStdout(),
			[]string{"DATE", "DESCRIPTION", "AMOUNT", "CATEGORY", "STATUS", "PAID BY", "SPLIT"}, rows)
	},
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

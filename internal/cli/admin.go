package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminStatsCmd)
	adminCmd.AddCommand(adminFamiliesCmd)
	adminCmd.AddCommand(adminUsersCmd)
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Platform administration (admin accounts only)",
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show platform counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		stats, err := client.AdminStats(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "families: %d (%d linked, %d unlinked)\n", stats.TotalFamilies, stats.LinkedFamilies, stats.UnlinkedFamilies)
		fmt.Fprintf(out, "users:    %d\n", stats.TotalUsers)
		fmt.Fprintf(out, "children: %d\n", stats.TotalChildren)
		return nil
	},
}

var adminFamiliesCmd = &cobra.Command{
	Use:   "families",
	Short: "List every family",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		families, err := client.AdminFamilies(ctx)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(families))
		for _, f := range families {
			parent2 := ""
			if f.Parent2 != nil {
				parent2 = f.Parent2.Email
			}
			rows = append(rows, []string{
				f.ID,
				f.FamilyName,
				f.Parent1.Email,
				parent2,
				fmt.Sprintf("%d", f.ChildrenCount),
				formatYesNo(f.IsLinked),
			})
		}
		return writeTable(cmd.OutOrStdout(),
			[]string{"ID", "FAMILY", "PARENT 1", "PARENT 2", "CHILDREN", "LINKED"}, rows)
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List every user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		users, err := client.AdminUsers(ctx)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(users))
		for _, u := range users {
			family := ""
			if u.HasFamily {
				family = u.FamilyName
			}
			rows = append(rows, []string{u.FirstName + " " + u.LastName, u.Email, family})
		}
		return writeTable(cmd.OutOrStdout(), []string{"NAME", "EMAIL", "FAMILY"}, rows)
	},
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bridgette-app/bridgette/internal/api"
	"github.com/bridgette-app/bridgette/internal/model"
)

var (
	familyCreateName     string
	familyCreateCoParent string
	familyCreateCustody  string

	childName        string
	childDOB         string
	childGrade       string
	childSchool      string
	childAllergies   string
	childMedications string
	childNotes       string
)

func init() {
	rootCmd.AddCommand(familyCmd)
	rootCmd.AddCommand(childrenCmd)

	familyCmd.AddCommand(familyCreateCmd)
	familyCreateCmd.Flags().StringVar(&familyCreateName, "name", "", "family name (required)")
	familyCreateCmd.Flags().StringVar(&familyCreateCoParent, "co-parent", "", "co-parent email to invite")
	familyCreateCmd.Flags().StringVar(&familyCreateCustody, "custody", "", "custody arrangement description")
	_ = familyCreateCmd.MarkFlagRequired("name")

	childrenCmd.AddCommand(childrenListCmd)
	childrenCmd.AddCommand(childrenAddCmd)
	childrenCmd.AddCommand(childrenUpdateCmd)
	childrenCmd.AddCommand(childrenRemoveCmd)

	for _, c := range []*cobra.Command{childrenAddCmd, childrenUpdateCmd} {
		c.Flags().StringVar(&childName, "name", "", "child's name")
		c.Flags().StringVar(&childDOB, "dob", "", "date of birth (YYYY-MM-DD)")
		c.Flags().StringVar(&childGrade, "grade", "", "school grade")
		c.Flags().StringVar(&childSchool, "school", "", "school name")
		c.Flags().StringVar(&childAllergies, "allergies", "", "allergies")
		c.Flags().StringVar(&childMedications, "medications", "", "medications")
		c.Flags().StringVar(&childNotes, "notes", "", "freeform notes")
	}
	_ = childrenAddCmd.MarkFlagRequired("name")
	_ = childrenAddCmd.MarkFlagRequired("dob")
}

var familyCmd = &cobra.Command{
	Use:   "family",
	Short: "Show the family profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		family, err := client.Family(ctx)
		if api.IsNotFound(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "No family profile yet. Run 'bridgette family create'.")
			return nil
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", family.FamilyName)
		fmt.Fprintf(out, "parent 1: %s\n", family.Parent1Email)
		if family.Parent2Email != "" {
			fmt.Fprintf(out, "parent 2: %s\n", family.Parent2Email)
		} else {
			fmt.Fprintln(out, "parent 2: (not linked yet)")
		}
		if family.CustodyArrangement != "" {
			fmt.Fprintf(out, "custody:  %s\n", family.CustodyArrangement)
		}
		fmt.Fprintf(out, "children: %d\n", len(family.Children))
		return nil
	},
}

var familyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Set up the family profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		family, err := client.CreateFamily(ctx, model.FamilyCreate{
			FamilyName:         familyCreateName,
			Parent2Email:       familyCreateCoParent,
			CustodyArrangement: familyCreateCustody,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created family %s\n", family.FamilyName)
		return nil
	},
}

var childrenCmd = &cobra.Command{
	Use:   "children",
	Short: "Manage the family's children records",
}

var childrenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List children",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		family, err := client.Family(ctx)
		if err != nil {
			return err
		}

		if len(family.Children) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No children recorded.")
			return nil
		}

		rows := make([][]string, 0, len(family.Children))
		for _, child := range family.Children {
			rows = append(rows, []string{child.ID, child.Name, child.DateOfBirth, child.Grade, child.School})
		}
		return writeTable(cmd.OutOrStdout(), []string{"ID", "NAME", "BORN", "GRADE", "SCHOOL"}, rows)
	},
}

var childrenAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a child",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		child := childFromFlags()
		if err := child.Validate(); err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		created, err := client.AddChild(ctx, child)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var childrenUpdateCmd = &cobra.Command{
	Use:   "update <child-id>",
	Short: "Update a child record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()

		// Start from the current record so unset flags keep their values.
		family, err := client.Family(ctx)
		if err != nil {
			return err
		}
		var current *model.Child
		for i := range family.Children {
			if family.Children[i].ID == args[0] {
				current = &family.Children[i]
				break
			}
		}
		if current == nil {
			return fmt.Errorf("no child with id %s", args[0])
		}

		child := *current
		applyChildFlags(cmd, &child)
		if err := child.Validate(); err != nil {
			return err
		}

		updated, err := client.UpdateChild(ctx, args[0], child)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", updated.Name)
		return nil
	},
}

var childrenRemoveCmd = &cobra.Command{
	Use:   "remove <child-id>",
	Short: "Remove a child record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		if err := client.DeleteChild(ctx, args[0]); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
		return nil
	},
}

func childFromFlags() model.Child {
	return model.Child{
		Name:        childName,
		DateOfBirth: childDOB,
		Grade:       childGrade,
		School:      childSchool,
		Allergies:   childAllergies,
		Medications: childMedications,
		Notes:       childNotes,
	}
}

func applyChildFlags(cmd *cobra.Command, child *model.Child) {
	if cmd.Flags().Changed("name") {
		child.Name = childName
	}
	if cmd.Flags().Changed("dob") {
		child.DateOfBirth = childDOB
	}
	if cmd.Flags().Changed("grade") {
		child.Grade = childGrade
	}
	if cmd.Flags().Changed("school") {
		child.School = childSchool
	}
	if cmd.Flags().Changed("allergies") {
		child.Allergies = childAllergies
	}
	if cmd.Flags().Changed("medications") {
		child.Medications = childMedications
	}
	if cmd.Flags().Changed("notes") {
		child.Notes = childNotes
	}
}

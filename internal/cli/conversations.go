package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bridgette-app/bridgette/internal/model"
)

var (
	conversationsCategory string
	conversationsStarred  bool

	newSubject  string
	newCategory string
)

func init() {
	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(starCmd)
	rootCmd.AddCommand(archiveCmd)

	conversationsCmd.Flags().StringVar(&conversationsCategory, "category", "", "filter by category")
	conversationsCmd.Flags().BoolVar(&conversationsStarred, "starred", false, "only starred conversations")

	newCmd.Flags().StringVar(&newSubject, "subject", "", "conversation subject (required)")
	newCmd.Flags().StringVar(&newCategory, "category", string(model.CategoryGeneral), "conversation category")
	_ = newCmd.MarkFlagRequired("subject")
}

var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"convs"},
	Short:   "List conversations",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		conversations, err := client.Conversations(ctx)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(conversations))
		for _, conv := range conversations {
			if conv.IsArchived {
				continue
			}
			if conversationsCategory != "" && string(conv.Category) != conversationsCategory {
				continue
			}
			if conversationsStarred && !conv.IsStarred {
				continue
			}
			star := ""
			if conv.IsStarred {
				star = "*"
			}
			last := ""
			if !conv.LastActivity().IsZero() {
				last = conv.LastActivity().Format("2006-01-02 15:04")
			}
			rows = append(rows, []string{
				conv.ID,
				star,
				conv.Subject,
				string(conv.Category),
				fmt.Sprintf("%d", conv.MessageCount),
				fmt.Sprintf("%d", conv.UnreadCount),
				last,
			})
		}

		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No conversations.")
			return nil
		}
		return writeTable(cmd.OutOrStdout(),
			[]string{"ID", "", "SUBJECT", "CATEGORY", "MSGS", "UNREAD", "LAST ACTIVITY"}, rows)
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Open a new conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		req := model.ConversationCreate{
			Subject:  strings.TrimSpace(newSubject),
			Category: model.Category(newCategory),
		}
		if err := req.Validate(); err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		conv, err := client.CreateConversation(ctx, req)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created conversation %s: %s [%s]\n", conv.ID, conv.Subject, conv.Category)
		return nil
	},
}

var starCmd = &cobra.Command{
	Use:   "star <conversation-id>",
	Short: "Toggle a conversation's star",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		starred, err := client.ToggleStar(ctx, args[0])
		if err != nil {
			return err
		}

		if starred {
			fmt.Fprintln(cmd.OutOrStdout(), "Starred.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Unstarred.")
		}
		return nil
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive <conversation-id>",
	Short: "Archive a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		if err := client.ArchiveConversation(ctx, args[0]); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Archived.")
		return nil
	},
}

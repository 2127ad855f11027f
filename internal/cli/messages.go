package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bridgette-app/bridgette/internal/model"
)

var (
	sendBody string
	sendTone string
)

func init() {
	rootCmd.AddCommand(messagesCmd)
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVarP(&sendBody, "message", "m", "", "message body (required)")
	sendCmd.Flags().StringVar(&sendTone, "tone", string(model.ToneMatterOfFact), "message tone (friendly, matter-of-fact, neutral-legal)")
	_ = sendCmd.MarkFlagRequired("message")
}

var messagesCmd = &cobra.Command{
	Use:   "messages <conversation-id>",
	Short: "Show a conversation's messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		messages, err := client.Messages(ctx, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(messages) == 0 {
			fmt.Fprintln(out, "No messages.")
			return nil
		}

		for _, msg := range messages {
			fmt.Fprintf(out, "%s  %s [%s] (%s)\n", msg.Timestamp.Format("2006-01-02 15:04"), msg.SenderEmail, msg.Tone, msg.Status)
			for _, line := range strings.Split(msg.Content, "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
		return nil
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <conversation-id>",
	Short: "Send a message to a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := authedClient()
		if err != nil {
			return err
		}

		req := model.MessageCreate{
			ConversationID: args[0],
			Content:        sendBody,
			Tone:           model.Tone(sendTone),
		}
		if err := req.Validate(); err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		sent, err := client.SendMessage(ctx, req)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Sent %s\n", sent.ID)
		return nil
	},
}

// Chat commands for the wayfarer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfarer-app/wayfarer/internal/travel"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Direct messages between users",
}

var chatSendCmd = &cobra.Command{
	Use:   "send <sender-id> <receiver-id> <text>",
	Short: "Send a direct message",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		id := newID()
		if err := travel.SendMessage(s, id, args[0], args[1], args[2]); err != nil {
			return fmt.Errorf("send message: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Sent %s\n", id)
		return nil
	},
}

var chatListCmd = &cobra.Command{
	Use:   "list <user-a> <user-b>",
	Short: "Show the message thread between two users",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		messages, err := travel.MessagesBetween(s, args[0], args[1])
		if err != nil {
			return fmt.Errorf("list messages: %w", err)
		}

		if flagJSON {
			return printJSON(messages)
		}
		for _, m := range messages {
			marker := " "
			if !m.Read {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s: %s\n", marker, m.CreatedAt, m.SenderID, m.Content)
		}
		return nil
	},
}

var chatReadCmd = &cobra.Command{
	Use:   "read <sender-id> <receiver-id>",
	Short: "Mark messages from sender to receiver as read",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := travel.MarkMessagesRead(s, args[0], args[1]); err != nil {
			return fmt.Errorf("mark read: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Marked read")
		return nil
	},
}

var chatConversationsCmd = &cobra.Command{
	Use:   "conversations <user-id>",
	Short: "List conversations for a user, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		conversations, err := travel.Conversations(s, args[0])
		if err != nil {
			return fmt.Errorf("list conversations: %w", err)
		}

		if flagJSON {
			return printJSON(conversations)
		}
		for _, c := range conversations {
			last := ""
			if c.LastMessage != nil {
				last = c.LastMessage.Content
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tunread=%d\t%s\n", c.OtherUserID, c.UnreadCount, last)
		}
		return nil
	},
}

var chatUnreadCmd = &cobra.Command{
	Use:   "unread <user-id>",
	Short: "Count unread messages for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		count, err := travel.UnreadCount(s, args[0])
		if err != nil {
			return fmt.Errorf("count unread: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), count)
		return nil
	},
}

func init() {
	chatCmd.AddCommand(chatSendCmd)
	chatCmd.AddCommand(chatListCmd)
	chatCmd.AddCommand(chatReadCmd)
	chatCmd.AddCommand(chatConversationsCmd)
	chatCmd.AddCommand(chatUnreadCmd)
}

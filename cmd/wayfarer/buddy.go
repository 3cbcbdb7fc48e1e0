// Buddy commands for the wayfarer CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfarer-app/wayfarer/internal/travel"
)

var buddyCmd = &cobra.Command{
	Use:   "buddy",
	Short: "Manage travel buddy links",
}

var buddyRequestCmd = &cobra.Command{
	Use:   "request <sender-id> <receiver-id>",
	Short: "Send a buddy request",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		id := newID()
		if err := travel.RequestBuddy(s, id, args[0], args[1]); err != nil {
			if errors.Is(err, travel.ErrBuddyLinkExists) {
				return fmt.Errorf("a buddy link between %s and %s already exists", args[0], args[1])
			}
			return fmt.Errorf("request buddy: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Sent buddy request %s\n", id)
		return nil
	},
}

var buddyKind string

var buddyListCmd = &cobra.Command{
	Use:   "list <user-id>",
	Short: "List buddy links for a user",
	Long:  "List buddy links for a user. --kind selects sent, received, or accepted links.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind travel.BuddyKind
		switch buddyKind {
		case "sent":
			kind = travel.BuddySent
		case "received":
			kind = travel.BuddyReceived
		case "accepted":
			kind = travel.BuddyAccepted
		default:
			return fmt.Errorf("invalid --kind %q (valid: sent, received, accepted)", buddyKind)
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		links, err := travel.ListBuddiesWithProfiles(s, args[0], kind)
		if err != nil {
			return fmt.Errorf("list buddies: %w", err)
		}

		if flagJSON {
			return printJSON(links)
		}
		for _, link := range links {
			name := ""
			switch {
			case link.Sender != nil && link.SenderID != args[0]:
				name = link.Sender.Name
			case link.Receiver != nil:
				name = link.Receiver.Name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s -> %s\t%s\t%s\n",
				link.ID, link.SenderID, link.ReceiverID, link.Status, name)
		}
		return nil
	},
}

var buddyAcceptCmd = &cobra.Command{
	Use:   "accept <request-id>",
	Short: "Accept a pending buddy request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := travel.AcceptBuddy(s, args[0]); err != nil {
			return fmt.Errorf("accept buddy: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Accepted buddy request %s\n", args[0])
		return nil
	},
}

var buddyRejectCmd = &cobra.Command{
	Use:   "reject <request-id>",
	Short: "Reject a buddy request, removing the link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := travel.RejectBuddy(s, args[0]); err != nil {
			return fmt.Errorf("reject buddy: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rejected buddy request %s\n", args[0])
		return nil
	},
}

var buddyCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove duplicate buddy links and repair pair keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		removed, err := travel.CleanupDuplicateLinks(s)
		if err != nil {
			return fmt.Errorf("cleanup buddies: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d duplicate link(s)\n", removed)
		return nil
	},
}

func init() {
	buddyListCmd.Flags().StringVar(&buddyKind, "kind", "accepted", "which links to list: sent, received, accepted")

	buddyCmd.AddCommand(buddyRequestCmd)
	buddyCmd.AddCommand(buddyListCmd)
	buddyCmd.AddCommand(buddyAcceptCmd)
	buddyCmd.AddCommand(buddyRejectCmd)
	buddyCmd.AddCommand(buddyCleanupCmd)
}

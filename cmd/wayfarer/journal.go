// Journal commands for the wayfarer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfarer-app/wayfarer/internal/travel"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Keep dated notes on a trip",
}

var (
	journalTrip     string
	journalUser     string
	journalTitle    string
	journalContent  string
	journalDate     string
	journalPhotos   []string
	journalLocation string
)

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Write a journal entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if journalTrip == "" || journalUser == "" || journalTitle == "" {
			return fmt.Errorf("--trip, --user, and --title are required")
		}

		id := newID()
		queued, err := submitWrite(newOperation(types.OpCreate, types.EntityJournal, types.Record{
			"id":       id,
			"trip_id":  journalTrip,
			"user_id":  journalUser,
			"title":    journalTitle,
			"content":  journalContent,
			"date":     journalDate,
			"photos":   types.EncodeStringList(journalPhotos),
			"location": journalLocation,
		}))
		if err != nil {
			return fmt.Errorf("add journal entry: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added journal entry %s%s\n", id, queuedNote(queued))
		return nil
	},
}

var journalListCmd = &cobra.Command{
	Use:   "list <trip-id>",
	Short: "List journal entries on a trip, newest date first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := travel.ListJournalByTrip(s, args[0])
		if err != nil {
			return fmt.Errorf("list journal: %w", err)
		}

		if flagJSON {
			return printJSON(entries)
		}
		for _, entry := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d photo(s)\n",
				entry.ID, entry.Date, entry.Title, len(entry.Photos))
		}
		return nil
	},
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queued, err := submitWrite(newOperation(types.OpDelete, types.EntityJournal, types.Record{"id": args[0]}))
		if err != nil {
			return fmt.Errorf("delete journal entry: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted journal entry %s%s\n", args[0], queuedNote(queued))
		return nil
	},
}

func init() {
	journalAddCmd.Flags().StringVar(&journalTrip, "trip", "", "trip id")
	journalAddCmd.Flags().StringVar(&journalUser, "user", "", "author user id")
	journalAddCmd.Flags().StringVar(&journalTitle, "title", "", "entry title")
	journalAddCmd.Flags().StringVar(&journalContent, "content", "", "entry text")
	journalAddCmd.Flags().StringVar(&journalDate, "date", "", "entry date (YYYY-MM-DD)")
	journalAddCmd.Flags().StringSliceVar(&journalPhotos, "photos", nil, "photo references")
	journalAddCmd.Flags().StringVar(&journalLocation, "location", "", "where the entry was written")

	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalDeleteCmd)
}

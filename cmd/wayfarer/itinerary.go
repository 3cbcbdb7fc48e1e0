// Itinerary commands for the wayfarer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfarer-app/wayfarer/internal/travel"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

var itineraryCmd = &cobra.Command{
	Use:   "itinerary",
	Short: "Plan trip activities day by day",
}

var (
	itineraryTrip        string
	itineraryDay         int
	itineraryTitle       string
	itineraryDescription string
	itineraryTime        string
	itineraryLocation    string
)

var itineraryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Schedule an activity on a trip day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if itineraryTrip == "" || itineraryTitle == "" {
			return fmt.Errorf("--trip and --title are required")
		}

		id := newID()
		queued, err := submitWrite(newOperation(types.OpCreate, types.EntityItinerary, types.Record{
			"id":          id,
			"trip_id":     itineraryTrip,
			"day":         itineraryDay,
			"title":       itineraryTitle,
			"description": itineraryDescription,
			"time":        itineraryTime,
			"location":    itineraryLocation,
		}))
		if err != nil {
			return fmt.Errorf("add itinerary item: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added itinerary item %s%s\n", id, queuedNote(queued))
		return nil
	},
}

var itineraryListCmd = &cobra.Command{
	Use:   "list <trip-id>",
	Short: "List trip activities in schedule order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		items, err := travel.ListItineraryByTrip(s, args[0])
		if err != nil {
			return fmt.Errorf("list itinerary: %w", err)
		}

		if flagJSON {
			return printJSON(items)
		}
		for _, item := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tday %d\t%s\t%s\t%s\n",
				item.ID, item.Day, item.Time, item.Title, item.Location)
		}
		return nil
	},
}

var itineraryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an itinerary item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queued, err := submitWrite(newOperation(types.OpDelete, types.EntityItinerary, types.Record{"id": args[0]}))
		if err != nil {
			return fmt.Errorf("delete itinerary item: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted itinerary item %s%s\n", args[0], queuedNote(queued))
		return nil
	},
}

func init() {
	itineraryAddCmd.Flags().StringVar(&itineraryTrip, "trip", "", "trip id")
	itineraryAddCmd.Flags().IntVar(&itineraryDay, "day", 1, "trip day number")
	itineraryAddCmd.Flags().StringVar(&itineraryTitle, "title", "", "activity title")
	itineraryAddCmd.Flags().StringVar(&itineraryDescription, "description", "", "activity details")
	itineraryAddCmd.Flags().StringVar(&itineraryTime, "time", "", "time of day")
	itineraryAddCmd.Flags().StringVar(&itineraryLocation, "location", "", "where the activity happens")

	itineraryCmd.AddCommand(itineraryAddCmd)
	itineraryCmd.AddCommand(itineraryListCmd)
	itineraryCmd.AddCommand(itineraryDeleteCmd)
}

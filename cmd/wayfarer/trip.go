// Trip commands for the wayfarer CLI.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfarer-app/wayfarer/internal/travel"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Manage trips",
}

var (
	tripUser        string
	tripDestination string
	tripStart       string
	tripEnd         string
	tripDescription string
)

var tripCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a trip",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tripUser == "" || tripDestination == "" {
			return fmt.Errorf("--user and --destination are required")
		}

		id := newID()
		queued, err := submitWrite(newOperation(types.OpCreate, types.EntityTrip, types.Record{
			"id":          id,
			"user_id":     tripUser,
			"destination": tripDestination,
			"start_date":  tripStart,
			"end_date":    tripEnd,
			"description": tripDescription,
		}))
		if err != nil {
			return fmt.Errorf("create trip: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created trip %s to %s%s\n", id, tripDestination, queuedNote(queued))
		return nil
	},
}

var tripListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trips, all or for one user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		var trips []types.Trip
		if tripUser != "" {
			trips, err = travel.ListTripsByUser(s, tripUser)
		} else {
			trips, err = travel.ListAllTrips(s)
		}
		if err != nil {
			return fmt.Errorf("list trips: %w", err)
		}

		if flagJSON {
			return printJSON(trips)
		}
		for _, trip := range trips {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s..%s\n", trip.ID, trip.Destination, trip.StartDate, trip.EndDate)
		}
		return nil
	},
}

var tripGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a trip with its participants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		trip, err := travel.GetTrip(s, args[0])
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return fmt.Errorf("trip %q not found", args[0])
			}
			return fmt.Errorf("get trip: %w", err)
		}
		participants, err := travel.TripParticipants(s, args[0])
		if err != nil {
			return fmt.Errorf("list participants: %w", err)
		}

		if flagJSON {
			return printJSON(map[string]any{"trip": trip, "participants": participants})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s..%s\n", trip.ID, trip.Destination, trip.StartDate, trip.EndDate)
		if trip.Description != "" {
			fmt.Fprintln(cmd.OutOrStdout(), trip.Description)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "participants: %s\n", strings.Join(participants, ", "))
		return nil
	},
}

var tripUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update trip fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data := types.Record{"id": args[0]}
		if cmd.Flags().Changed("destination") {
			data["destination"] = tripDestination
		}
		if cmd.Flags().Changed("start") {
			data["start_date"] = tripStart
		}
		if cmd.Flags().Changed("end") {
			data["end_date"] = tripEnd
		}
		if cmd.Flags().Changed("description") {
			data["description"] = tripDescription
		}

		queued, err := submitWrite(newOperation(types.OpUpdate, types.EntityTrip, data))
		if err != nil {
			return fmt.Errorf("update trip: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated trip %s%s\n", args[0], queuedNote(queued))
		return nil
	},
}

var tripDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a trip and everything attached to it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queued, err := submitWrite(newOperation(types.OpDelete, types.EntityTrip, types.Record{"id": args[0]}))
		if err != nil {
			return fmt.Errorf("delete trip: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted trip %s%s\n", args[0], queuedNote(queued))
		return nil
	},
}

var tripJoinCmd = &cobra.Command{
	Use:   "join <id>",
	Short: "Add a user to a trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if tripUser == "" {
			return fmt.Errorf("--user is required")
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := travel.JoinTrip(s, args[0], tripUser); err != nil {
			return fmt.Errorf("join trip: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to trip %s\n", tripUser, args[0])
		return nil
	},
}

func init() {
	tripCreateCmd.Flags().StringVar(&tripUser, "user", "", "owner user id")
	tripCreateCmd.Flags().StringVar(&tripDestination, "destination", "", "where the trip goes")
	tripCreateCmd.Flags().StringVar(&tripStart, "start", "", "start date (YYYY-MM-DD)")
	tripCreateCmd.Flags().StringVar(&tripEnd, "end", "", "end date (YYYY-MM-DD)")
	tripCreateCmd.Flags().StringVar(&tripDescription, "description", "", "trip description")

	tripListCmd.Flags().StringVar(&tripUser, "user", "", "limit to trips the user participates in")

	tripUpdateCmd.Flags().StringVar(&tripDestination, "destination", "", "where the trip goes")
	tripUpdateCmd.Flags().StringVar(&tripStart, "start", "", "start date (YYYY-MM-DD)")
	tripUpdateCmd.Flags().StringVar(&tripEnd, "end", "", "end date (YYYY-MM-DD)")
	tripUpdateCmd.Flags().StringVar(&tripDescription, "description", "", "trip description")

	tripJoinCmd.Flags().StringVar(&tripUser, "user", "", "user id to add")

	tripCmd.AddCommand(tripCreateCmd)
	tripCmd.AddCommand(tripListCmd)
	tripCmd.AddCommand(tripGetCmd)
	tripCmd.AddCommand(tripUpdateCmd)
	tripCmd.AddCommand(tripDeleteCmd)
	tripCmd.AddCommand(tripJoinCmd)
}

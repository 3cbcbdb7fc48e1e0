// Recommendation commands for the wayfarer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfarer-app/wayfarer/internal/travel"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Share rated place tips on a trip",
}

var (
	recommendTrip        string
	recommendUser        string
	recommendTitle       string
	recommendDescription string
	recommendCategory    string
	recommendLocation    string
	recommendRating      float64
)

var recommendAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recommendation to a trip",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if recommendTrip == "" || recommendUser == "" || recommendTitle == "" {
			return fmt.Errorf("--trip, --user, and --title are required")
		}

		id := newID()
		queued, err := submitWrite(newOperation(types.OpCreate, types.EntityRecommendation, types.Record{
			"id":          id,
			"trip_id":     recommendTrip,
			"user_id":     recommendUser,
			"title":       recommendTitle,
			"description": recommendDescription,
			"category":    recommendCategory,
			"location":    recommendLocation,
			"rating":      recommendRating,
		}))
		if err != nil {
			return fmt.Errorf("add recommendation: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added recommendation %s%s\n", id, queuedNote(queued))
		return nil
	},
}

var recommendListCmd = &cobra.Command{
	Use:   "list <trip-id>",
	Short: "List recommendations on a trip, best rated first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := travel.ListRecommendationsByTrip(s, args[0])
		if err != nil {
			return fmt.Errorf("list recommendations: %w", err)
		}

		if flagJSON {
			return printJSON(recs)
		}
		for _, r := range recs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f\t%s\t%s\t%s\n",
				r.ID, r.Rating, r.Category, r.Title, r.Location)
		}
		return nil
	},
}

var recommendDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recommendation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queued, err := submitWrite(newOperation(types.OpDelete, types.EntityRecommendation, types.Record{"id": args[0]}))
		if err != nil {
			return fmt.Errorf("delete recommendation: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted recommendation %s%s\n", args[0], queuedNote(queued))
		return nil
	},
}

func init() {
	recommendAddCmd.Flags().StringVar(&recommendTrip, "trip", "", "trip id")
	recommendAddCmd.Flags().StringVar(&recommendUser, "user", "", "recommending user id")
	recommendAddCmd.Flags().StringVar(&recommendTitle, "title", "", "place or activity name")
	recommendAddCmd.Flags().StringVar(&recommendDescription, "description", "", "why it is worth a visit")
	recommendAddCmd.Flags().StringVar(&recommendCategory, "category", "", "recommendation category")
	recommendAddCmd.Flags().StringVar(&recommendLocation, "location", "", "where it is")
	recommendAddCmd.Flags().Float64Var(&recommendRating, "rating", 0, "rating out of 5")

	recommendCmd.AddCommand(recommendAddCmd)
	recommendCmd.AddCommand(recommendListCmd)
	recommendCmd.AddCommand(recommendDeleteCmd)
}

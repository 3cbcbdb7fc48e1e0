// Expense commands for the wayfarer CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfarer-app/wayfarer/internal/travel"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Track trip expenses",
}

var (
	expenseTrip        string
	expenseUser        string
	expenseTitle       string
	expenseAmount      float64
	expenseCategory    string
	expenseDescription string
	expenseSplit       []string
)

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense on a trip",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if expenseTrip == "" || expenseUser == "" || expenseTitle == "" {
			return fmt.Errorf("--trip, --user, and --title are required")
		}

		id := newID()
		queued, err := submitWrite(newOperation(types.OpCreate, types.EntityExpense, types.Record{
			"id":          id,
			"trip_id":     expenseTrip,
			"user_id":     expenseUser,
			"title":       expenseTitle,
			"amount":      expenseAmount,
			"category":    expenseCategory,
			"description": expenseDescription,
			"split_among": types.EncodeStringList(expenseSplit),
		}))
		if err != nil {
			return fmt.Errorf("add expense: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added expense %s%s\n", id, queuedNote(queued))
		return nil
	},
}

var expenseListCmd = &cobra.Command{
	Use:   "list <trip-id>",
	Short: "List expenses on a trip, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		expenses, err := travel.ListExpensesByTrip(s, args[0])
		if err != nil {
			return fmt.Errorf("list expenses: %w", err)
		}

		if flagJSON {
			return printJSON(expenses)
		}
		for _, e := range expenses {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f\t%s\t%s\tsplit: %s\n",
				e.ID, e.Amount, e.Category, e.Title, strings.Join(e.SplitAmong, ","))
		}
		return nil
	},
}

var expenseTotalCmd = &cobra.Command{
	Use:   "total <trip-id>",
	Short: "Sum all expenses on a trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		total, err := travel.TripExpenseTotal(s, args[0])
		if err != nil {
			return fmt.Errorf("total expenses: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", total)
		return nil
	},
}

var expenseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queued, err := submitWrite(newOperation(types.OpDelete, types.EntityExpense, types.Record{"id": args[0]}))
		if err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense %s%s\n", args[0], queuedNote(queued))
		return nil
	},
}

func init() {
	expenseAddCmd.Flags().StringVar(&expenseTrip, "trip", "", "trip id")
	expenseAddCmd.Flags().StringVar(&expenseUser, "user", "", "paying user id")
	expenseAddCmd.Flags().StringVar(&expenseTitle, "title", "", "what the expense was for")
	expenseAddCmd.Flags().Float64Var(&expenseAmount, "amount", 0, "amount spent")
	expenseAddCmd.Flags().StringVar(&expenseCategory, "category", "", "expense category")
	expenseAddCmd.Flags().StringVar(&expenseDescription, "description", "", "expense details")
	expenseAddCmd.Flags().StringSliceVar(&expenseSplit, "split", nil, "user ids the expense is split among")

	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseListCmd)
	expenseCmd.AddCommand(expenseTotalCmd)
	expenseCmd.AddCommand(expenseDeleteCmd)
}

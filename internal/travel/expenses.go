package travel

import (
	"fmt"
	"strings"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// ExpenseUpdate carries the expense fields to change.
type ExpenseUpdate struct {
	Title       *string
	Amount      *float64
	Category    *string
	Description *string
	SplitAmong  *[]string
}

// CreateExpense records a cost against a trip. SplitAmong is stored as
// JSON text.
func CreateExpense(s types.Store, id, tripID, userID, title string, amount float64, category, description string, splitAmong []string) error {
	err := s.ExecuteWrite(
		"INSERT INTO expenses (id, trip_id, user_id, title, amount, category, description, split_among, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))",
		[]any{id, tripID, userID, title, amount, category, description, types.EncodeStringList(splitAmong)})
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}
	return nil
}

// ListExpensesByTrip returns a trip's expenses newest first.
func ListExpensesByTrip(s types.Store, tripID string) ([]types.Expense, error) {
	rows, err := s.QueryAll(
		"SELECT * FROM expenses WHERE trip_id = ? ORDER BY created_at DESC", []any{tripID})
	if err != nil {
		return nil, err
	}
	expenses := make([]types.Expense, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, types.Expense{
			ID:          types.StringField(row, "id"),
			TripID:      types.StringField(row, "trip_id"),
			UserID:      types.StringField(row, "user_id"),
			Title:       types.StringField(row, "title"),
			Amount:      types.FloatField(row, "amount"),
			Category:    types.StringField(row, "category"),
			Description: types.StringField(row, "description"),
			SplitAmong:  types.DecodeStringList(row["split_among"]),
			CreatedAt:   types.StringField(row, "created_at"),
		})
	}
	return expenses, nil
}

// TripExpenseTotal sums a trip's expense amounts.
func TripExpenseTotal(s types.Store, tripID string) (float64, error) {
	expenses, err := ListExpensesByTrip(s, tripID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total, nil
}

// UpdateExpense applies the non-nil fields.
func UpdateExpense(s types.Store, expenseID string, updates ExpenseUpdate) error {
	var fields []string
	var params []any

	if updates.Title != nil {
		fields = append(fields, "title = ?")
		params = append(params, *updates.Title)
	}
	if updates.Amount != nil {
		fields = append(fields, "amount = ?")
		params = append(params, *updates.Amount)
	}
	if updates.Category != nil {
		fields = append(fields, "category = ?")
		params = append(params, *updates.Category)
	}
	if updates.Description != nil {
		fields = append(fields, "description = ?")
		params = append(params, *updates.Description)
	}
	if updates.SplitAmong != nil {
		fields = append(fields, "split_among = ?")
		params = append(params, types.EncodeStringList(*updates.SplitAmong))
	}
	if len(fields) == 0 {
		return nil
	}

	params = append(params, expenseID)
	query := "UPDATE expenses SET " + strings.Join(fields, ", ") + " WHERE id = ?"
	if err := s.ExecuteWrite(query, params); err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	return nil
}

// DeleteExpense removes one expense.
func DeleteExpense(s types.Store, expenseID string) error {
	if err := s.ExecuteWrite("DELETE FROM expenses WHERE id = ?", []any{expenseID}); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	return nil
}

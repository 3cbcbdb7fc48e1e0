// User commands for the wayfarer CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfarer-app/wayfarer/internal/travel"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userPassword string

var userRegisterCmd = &cobra.Command{
	Use:   "register <email> <name>",
	Short: "Register a new user account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, name := args[0], args[1]
		if userPassword == "" {
			return fmt.Errorf("--password is required")
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		hash, err := travel.HashPassword(userPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		id := newID()
		if err := travel.CreateUser(s, id, email, name, hash); err != nil {
			if errors.Is(err, travel.ErrEmailTaken) {
				return fmt.Errorf("email %q is already registered", email)
			}
			return fmt.Errorf("register user: %w", err)
		}
		if err := travel.CreateProfile(s, id, name, "", "", nil); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", name, id)
		return nil
	},
}

var userLoginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Verify credentials for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if userPassword == "" {
			return fmt.Errorf("--password is required")
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		user, err := travel.Authenticate(s, args[0], userPassword)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return fmt.Errorf("invalid email or password")
			}
			return fmt.Errorf("authenticate: %w", err)
		}

		if flagJSON {
			return printJSON(user)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s (%s)\n", user.Name, user.ID)
		return nil
	},
}

var userGetCmd = &cobra.Command{
	Use:   "get <email>",
	Short: "Show a user account by email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		user, err := travel.GetUserByEmail(s, args[0])
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return fmt.Errorf("user %q not found", args[0])
			}
			return fmt.Errorf("get user: %w", err)
		}

		if flagJSON {
			return printJSON(user)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", user.ID, user.Email, user.Name)
		return nil
	},
}

func init() {
	userRegisterCmd.Flags().StringVar(&userPassword, "password", "", "account password")
	userLoginCmd.Flags().StringVar(&userPassword, "password", "", "account password")

	userCmd.AddCommand(userRegisterCmd)
	userCmd.AddCommand(userLoginCmd)
	userCmd.AddCommand(userGetCmd)
}

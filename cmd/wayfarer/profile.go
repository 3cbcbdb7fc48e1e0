// Profile commands for the wayfarer CLI.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfarer-app/wayfarer/internal/travel"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage travel profiles",
}

var profileGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		profile, err := travel.GetProfile(s, args[0])
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return fmt.Errorf("profile %q not found", args[0])
			}
			return fmt.Errorf("get profile: %w", err)
		}

		if flagJSON {
			return printJSON(profile)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
			profile.ID, profile.Name, profile.Country, strings.Join(profile.TravelInterests, ","))
		return nil
	},
}

var profileExclude string

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		profiles, err := travel.ListProfiles(s, profileExclude)
		if err != nil {
			return fmt.Errorf("list profiles: %w", err)
		}

		if flagJSON {
			return printJSON(profiles)
		}
		for _, p := range profiles {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.ID, p.Name, p.Country)
		}
		return nil
	},
}

var profileSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search profiles by name, country, or interest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		profiles, err := travel.SearchProfiles(s, args[0], profileExclude)
		if err != nil {
			return fmt.Errorf("search profiles: %w", err)
		}

		if flagJSON {
			return printJSON(profiles)
		}
		for _, p := range profiles {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.ID, p.Name, p.Country)
		}
		return nil
	},
}

var (
	profileName      string
	profileBio       string
	profileCountry   string
	profileInterests []string
	profilePicture   string
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update profile fields",
	Long:  "Update only the profile fields whose flags are set; others are left untouched.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		var updates travel.ProfileUpdate
		if cmd.Flags().Changed("name") {
			updates.Name = &profileName
		}
		if cmd.Flags().Changed("bio") {
			updates.Bio = &profileBio
		}
		if cmd.Flags().Changed("country") {
			updates.Country = &profileCountry
		}
		if cmd.Flags().Changed("interests") {
			updates.TravelInterests = &profileInterests
		}
		if cmd.Flags().Changed("picture") {
			updates.ProfilePicture = &profilePicture
		}

		if err := travel.UpdateProfile(s, args[0], updates); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated profile %s\n", args[0])
		return nil
	},
}

func init() {
	profileListCmd.Flags().StringVar(&profileExclude, "exclude", "", "user id to exclude from results")
	profileSearchCmd.Flags().StringVar(&profileExclude, "exclude", "", "user id to exclude from results")

	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileUpdateCmd.Flags().StringVar(&profileBio, "bio", "", "short bio")
	profileUpdateCmd.Flags().StringVar(&profileCountry, "country", "", "home country")
	profileUpdateCmd.Flags().StringSliceVar(&profileInterests, "interests", nil, "travel interests")
	profileUpdateCmd.Flags().StringVar(&profilePicture, "picture", "", "profile picture reference")

	profileCmd.AddCommand(profileGetCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileSearchCmd)
	profileCmd.AddCommand(profileUpdateCmd)
}

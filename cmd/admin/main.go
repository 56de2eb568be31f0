package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "linkscore-admin",
		Short:         "Manage voting settings and banned users",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: environment only)")

	root.AddCommand(settingsCmd())
	root.AddCommand(usersCmd())

	return root
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the global voting settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsShow(cmd)
		},
	})

	var (
		votingDisabled bool
		maxVotes       int
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the kill switch or the daily quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			var disabled *bool
			var maxVotesPerDay *int
			if cmd.Flags().Changed("voting-disabled") {
				disabled = &votingDisabled
			}
			if cmd.Flags().Changed("max-votes") {
				maxVotesPerDay = &maxVotes
			}
			if disabled == nil && maxVotesPerDay == nil {
				return fmt.Errorf("nothing to change: pass --voting-disabled or --max-votes")
			}
			return runSettingsSet(cmd, disabled, maxVotesPerDay)
		},
	}
	set.Flags().BoolVar(&votingDisabled, "voting-disabled", false, "turn voting off (true) or on (false)")
	set.Flags().IntVar(&maxVotes, "max-votes", 0, "maximum new links a user may vote on per day")
	cmd.AddCommand(set)

	return cmd
}

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect and ban users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <user-id>",
		Short: "Print a user record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserShow(cmd, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "ban <user-id>",
		Short: "Reject every future vote from a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetBanned(cmd, args[0], true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "unban <user-id>",
		Short: "Allow a banned user to vote again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetBanned(cmd, args[0], false)
		},
	})

	return cmd
}

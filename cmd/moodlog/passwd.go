// ABOUTME: Password change command for the moodlog CLI
// ABOUTME: Requires the unlocked state and re-verifies the old secret before replacing it

package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newPasswdCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the journal password",
		RunE: withApp(configPath, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			old, err := promptPassword("Current password: ")
			if err != nil {
				return err
			}
			updated, err := promptPassword("New password (empty keeps the current one): ")
			if err != nil {
				return err
			}

			if err := a.gate.ChangeSecret(ctx, old, updated); err != nil {
				return err
			}
			if updated == "" {
				fmt.Println("Password unchanged.")
				return nil
			}
			color.New(color.FgGreen).Println("Password changed.")
			return nil
		}),
	}
}

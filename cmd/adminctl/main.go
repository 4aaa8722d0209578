package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syncfit/syncfit-backend/internal/di"
)

func main() {
	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "SyncFit backend operations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := di.InitializeMigrationRunner()
			if err != nil {
				return err
			}
			if err := runner.Run(); err != nil {
				return err
			}
			fmt.Println("migration complete")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a verified demo account with sample tracker data",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := di.InitializeSeedRunner()
			if err != nil {
				return err
			}
			if err := runner.Run(email, password); err != nil {
				return err
			}
			fmt.Printf("seeded demo account %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "demo@syncfit.app", "demo account email")
	cmd.Flags().StringVar(&password, "password", "demo-password", "demo account password")
	return cmd
}

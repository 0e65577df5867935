package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dbadapter "github.com/iPad7/gantt-4team/internal/adapter/db"
	"github.com/iPad7/gantt-4team/internal/app/service"
	"github.com/iPad7/gantt-4team/internal/config"
	"github.com/iPad7/gantt-4team/internal/core/domain"
)

// createUserCmd bootstraps accounts; every user endpoint sits behind a token.
func createUserCmd() *cobra.Command {
	var input domain.CreateUserInput

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			logger, err := setupLogger(cfg)
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			db, err := dbadapter.ConnectDB(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to %s: %w", cfg.DbDriver, err)
			}
			defer db.Close()

			if input.Name == "" {
				input.Name = input.Username
			}

			users := service.NewUserService(dbadapter.NewUserRepository(db))
			user, err := users.CreateUser(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %q with id %d\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input.Username, "username", "u", "", "login name")
	cmd.Flags().StringVarP(&input.Name, "name", "n", "", "display name (defaults to the username)")
	cmd.Flags().StringVarP(&input.Password, "password", "p", "", "password")
	cmd.Flags().BoolVar(&input.IsAdmin, "admin", false, "grant admin rights")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

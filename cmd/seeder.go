package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	seedEmployeeID string
	seedName       string
	seedPassword   string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a user account",
	Long: `Create a user through the regular signup path. The account is an admin
when --employee-id equals the configured admin employee id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to init db: %w", err)
		}
		defer db.Close()

		gdb, err := initGorm(db)
		if err != nil {
			return fmt.Errorf("failed to init gorm: %w", err)
		}

		lg := logger.LoggerWrapper()
		svc := newAuthService(gdb, cfg, lg).WithPublisher(newEventBus(lg))

		_, err = svc.Register(context.Background(), auth.SignupDTO{
			EmployeeID: seedEmployeeID,
			Name:       seedName,
			Password:   seedPassword,
		})
		if errors.Is(err, internal.ErrUserExists) {
			cmd.Printf("user %s already exists\n", seedEmployeeID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}

		cmd.Printf("seeded %s user %s\n", svc.RoleFor(seedEmployeeID), seedEmployeeID)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedEmployeeID, "employee-id", "", "employee id of the account")
	seedCmd.Flags().StringVar(&seedName, "name", "", "display name")
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "initial password")
	_ = seedCmd.MarkFlagRequired("employee-id")
	_ = seedCmd.MarkFlagRequired("name")
	_ = seedCmd.MarkFlagRequired("password")
}

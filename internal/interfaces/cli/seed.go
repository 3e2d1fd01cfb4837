package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SolBenven/proyecto-final/internal/domain/account"
	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/database/postgres"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create demo accounts for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			defer log.Sync()

			db, err := postgres.Connect(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(db, cfg.Database, log); err != nil {
				return err
			}

			created, err := seedAccounts(cmd.Context(),
				postgres.NewAccountRepository(db),
				postgres.NewDepartmentRepository(db),
				log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d accounts\n", created)
			return nil
		},
	}
}

// seedAccounts creates the demo identities: one head per regular department,
// the technical secretary, and a handful of end users.  Accounts whose
// username already exists are skipped, so the command can be re-run.
// Credentials live in the upstream identity provider; password hashes here
// are placeholders.
func seedAccounts(ctx context.Context, accounts account.Repository, depts department.Repository, log logging.Logger) (int, error) {
	all, err := depts.List(ctx)
	if err != nil {
		return 0, err
	}

	var seeds []*account.Account
	for _, d := range all {
		if d.IsTechnicalSecretariat {
			seeds = append(seeds, &account.Account{
				FirstName:    "Silvia",
				LastName:     "Torres",
				Email:        "secretaria@uni.edu.ar",
				Username:     "secretaria_tecnica",
				PasswordHash: "!",
				Kind:         account.KindAdmin,
				Admin:        &account.AdminProfile{Role: account.RoleTechnicalSecretary},
			})
			continue
		}
		seeds = append(seeds, &account.Account{
			FirstName:    "Jefe",
			LastName:     d.DisplayName,
			Email:        fmt.Sprintf("jefe.%s@uni.edu.ar", d.Name),
			Username:     "jefe_" + d.Name,
			PasswordHash: "!",
			Kind:         account.KindAdmin,
			Admin:        &account.AdminProfile{Role: account.RoleDepartmentHead, DepartmentID: d.ID},
		})
	}

	seeds = append(seeds,
		&account.Account{
			FirstName:    "Ana",
			LastName:     "García",
			Email:        "ana.garcia@uni.edu.ar",
			Username:     "agarcia",
			PasswordHash: "!",
			Kind:         account.KindEndUser,
			EndUser:      &account.EndUserProfile{Cloister: account.CloisterStudent},
		},
		&account.Account{
			FirstName:    "Martín",
			LastName:     "López",
			Email:        "martin.lopez@uni.edu.ar",
			Username:     "mlopez",
			PasswordHash: "!",
			Kind:         account.KindEndUser,
			EndUser:      &account.EndUserProfile{Cloister: account.CloisterTeacher},
		},
		&account.Account{
			FirstName:    "Carla",
			LastName:     "Méndez",
			Email:        "carla.mendez@uni.edu.ar",
			Username:     "cmendez",
			PasswordHash: "!",
			Kind:         account.KindEndUser,
			EndUser:      &account.EndUserProfile{Cloister: account.CloisterStaff},
		},
	)

	created := 0
	for _, acc := range seeds {
		exists, err := accounts.UsernameExists(ctx, acc.Username)
		if err != nil {
			return created, err
		}
		if exists {
			log.Debug("seed account already present", logging.String("username", acc.Username))
			continue
		}
		if err := accounts.Create(ctx, acc); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

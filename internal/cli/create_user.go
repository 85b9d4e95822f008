package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/database/users"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/services"
)

// CreateUserCommand provisions an account directly in the database, e.g. an
// administrator when startup seeding is disabled.
type CreateUserCommand struct {
	DatabasePath string
	Username     string
	Password     string
	Role         string
	BcryptCost   int

	out io.Writer
}

// NewCreateUserCommand creates a new CreateUserCommand
func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database")
	fs.StringVar(&cmd.Username, "username", "", "Username of the new account (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password of the new account (required)")
	fs.StringVar(&cmd.Role, "role", string(entities.RoleUser), "Role of the new account, e.g. ROLE_ADMIN")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", 10, "bcrypt cost factor")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -username NAME -password PASS [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an account in the catalog database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Username == "" || cmd.Password == "" {
		return errors.New("-username and -password are required")
	}
	return nil
}

// Run executes the command
func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath, "silent", zap.NewNop())
	if err != nil {
		return err
	}
	defer db.Close()

	hasher := auth.NewBcryptHasher(cmd.BcryptCost)
	authService := auth.NewService(services.NewUserService(users.NewRepository(db.DB), hasher), hasher)

	user, err := authService.Register(cmd.Username, cmd.Password, entities.Role(cmd.Role))
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", cmd.Username, err)
	}

	fmt.Fprintf(cmd.out, "Created user %s (id %d, %s)\n", user.Username, user.ID, user.Role)
	return nil
}

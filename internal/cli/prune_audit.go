package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/audit"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	audit_repository "github.com/mrlokans/bookcatalog/internal/database/audit"
	"github.com/mrlokans/bookcatalog/internal/scheduler"
)

// PruneAuditCommand deletes audit events older than the retention period
// without waiting for the scheduled cleanup.
type PruneAuditCommand struct {
	DatabasePath  string
	RetentionDays int

	out io.Writer
}

func NewPruneAuditCommand() *PruneAuditCommand {
	return &PruneAuditCommand{out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *PruneAuditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("prune-audit", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database")
	fs.IntVar(&cmd.RetentionDays, "days", config.DefaultAuditRetentionDays, "Keep events newer than this many days")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s prune-audit [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete expired audit events.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.RetentionDays <= 0 {
		return errors.New("-days must be positive")
	}
	return nil
}

// Run executes the command
func (cmd *PruneAuditCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath, "silent", zap.NewNop())
	if err != nil {
		return err
	}
	defer db.Close()

	auditService := audit.NewService(audit_repository.NewRepository(db.DB), zap.NewNop())
	retention := scheduler.NewAuditRetentionScheduler(auditService, cmd.RetentionDays, config.DefaultAuditCleanupSchedule, zap.NewNop())

	deleted, err := retention.RunOnce()
	if err != nil {
		return fmt.Errorf("failed to prune audit events: %w", err)
	}

	fmt.Fprintf(cmd.out, "Deleted %d audit events older than %d days\n", deleted, cmd.RetentionDays)
	return nil
}

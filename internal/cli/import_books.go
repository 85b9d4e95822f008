package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/services"
)

// ImportBooksCommand loads a JSON array of books into the catalog. Books
// whose ISBN already exists are replaced.
type ImportBooksCommand struct {
	DatabasePath string
	InputPath    string
	DryRun       bool

	out io.Writer
}

// NewImportBooksCommand creates a new ImportBooksCommand
func NewImportBooksCommand() *ImportBooksCommand {
	return &ImportBooksCommand{out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *ImportBooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-books", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database")
	fs.StringVar(&cmd.InputPath, "input", "", "JSON file with an array of {isbn, title, author} (required)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Validate the file without writing to the database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-books -input books.json [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import books into the catalog database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.InputPath == "" {
		return errors.New("-input is required")
	}
	return nil
}

// Run executes the command
func (cmd *ImportBooksCommand) Run() error {
	data, err := os.ReadFile(cmd.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.InputPath, err)
	}

	var input []services.Book
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("failed to parse %s: %w", cmd.InputPath, err)
	}
	for i, book := range input {
		if book.ISBN == "" {
			return fmt.Errorf("book #%d has no isbn", i+1)
		}
	}

	if cmd.DryRun {
		fmt.Fprintf(cmd.out, "Would import %d books\n", len(input))
		return nil
	}

	db, err := database.NewDatabase(cmd.DatabasePath, "silent", zap.NewNop())
	if err != nil {
		return err
	}
	defer db.Close()

	svc := services.NewBookService(books.NewRepository(db.DB))
	var created, replaced int
	for _, book := range input {
		exists, err := svc.IsBookExist(book)
		if err != nil {
			return err
		}
		if _, err := svc.Save(book); err != nil {
			return fmt.Errorf("failed to save book %s: %w", book.ISBN, err)
		}
		if exists {
			replaced++
		} else {
			created++
		}
	}

	fmt.Fprintf(cmd.out, "Imported %d books (%d new, %d replaced)\n", len(input), created, replaced)
	return nil
}

// Package categorize handles description categorization commands
package categorize

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/pdf-expenses/cmd/root"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"

	"github.com/spf13/cobra"
)

var (
	// Description is the --description flag value.
	Description string
	// Verbose also prints the prototype phrases the description was compared with.
	Verbose bool
)

// prototypeLister is implemented by categorizers backed by prototype phrases.
type prototypeLister interface {
	Prototypes() []models.CategoryPrototype
}

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize an expense description",
	Long: `Categorize an expense description by comparing it with the category
prototypes. Prints the category label and its display name.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Description, "description", "d", "", "Expense description to categorize")
	Cmd.Flags().BoolVar(&Verbose, "verbose", false, "Also print the category prototype phrases")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(Description) == "" {
		return fmt.Errorf("description is required for categorization")
	}
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cat := appContainer.GetCategorizer()
	category := cat.Categorize(ctx, Description)

	appContainer.GetLogger().Debug("Description categorized",
		logging.Field{Key: logging.FieldCategory, Value: category.String()},
		logging.Field{Key: "categorizer", Value: cat.Name()})
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s\t%s\n", category, category.DisplayName()); err != nil {
		return err
	}
	if !Verbose {
		return nil
	}

	lister, ok := cat.(prototypeLister)
	if !ok {
		_, err := fmt.Fprintf(out, "(%s categorizer has no prototypes)\n", cat.Name())
		return err
	}
	for _, p := range lister.Prototypes() {
		if _, err := fmt.Fprintf(out, "  %s\t%s\n", p.Category, p.Phrase); err != nil {
			return err
		}
	}
	return nil
}

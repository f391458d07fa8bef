package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"deckmaker/internal/pptx"
	"deckmaker/pkg/config"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage presentation templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	RunE:  runTemplatesList,
}

var templatesCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create built-in templates",
	Long:  `Create built-in templates in the template directory. With no name, all of them are created.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTemplatesCreate,
}

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesCreateCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	for _, name := range pptx.TemplateNames() {
		path := filepath.Join(cfg.Deck.TemplateDir, name+".pptx")
		status := "not created"
		if _, err := os.Stat(path); err == nil {
			status = path
		}
		fmt.Printf("  %-14s %s\n", name, status)
	}
	return nil
}

func runTemplatesCreate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := os.MkdirAll(cfg.Deck.TemplateDir, 0755); err != nil {
		return fmt.Errorf("create template dir: %w", err)
	}

	names := pptx.TemplateNames()
	if len(args) == 1 {
		names = []string{args[0]}
	}

	for _, name := range names {
		path := filepath.Join(cfg.Deck.TemplateDir, name+".pptx")
		if err := pptx.CreateTemplate(name, path); err != nil {
			return err
		}
		fmt.Printf("Created %s\n", path)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"deckmaker/internal/pptx"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for Deckmaker",
	Long:  `Configure API keys, create directories, and generate the built-in templates.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("📊 Deckmaker Setup"))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Configuring environment", configureEnv},
		{"Creating directories", createDirectories},
		{"Generating templates", generateTemplates},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	printNextSteps()
	return nil
}

func configureEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	var provider string
	if err := huh.NewSelect[string]().
		Title("LLM Provider").
		Options(
			huh.NewOption("OpenAI", "openai"),
			huh.NewOption("Groq", "groq"),
		).
		Value(&provider).
		Run(); err != nil {
		return err
	}

	if err := configureProviderKey(env, provider); err != nil {
		return err
	}

	if err := configurePexels(env); err != nil {
		return err
	}

	return writeEnvFile(env)
}

func configureProviderKey(env map[string]string, provider string) error {
	title := "OpenAI API Key"
	desc := "https://platform.openai.com/api-keys"
	envKey := "OPENAI_API_KEY"
	if provider == "groq" {
		title = "GROQ API Key"
		desc = "https://console.groq.com/keys"
		envKey = "GROQ_API_KEY"
	}

	var key string
	if err := huh.NewInput().
		Title(title).
		Description(desc).
		Value(&key).
		Validate(required(title)).
		Run(); err != nil {
		return err
	}

	env[envKey] = strings.TrimSpace(key)
	return nil
}

func configurePexels(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup Pexels images?").
		Description("Slides get real stock photos instead of placeholders (optional)").
		Value(&setup).
		Run(); err != nil {
		return err
	}

	if !setup {
		return nil
	}

	var apiKey string
	if err := huh.NewInput().
		Title("Pexels API Key").
		Description("https://www.pexels.com/api/").
		Value(&apiKey).
		Run(); err != nil {
		return err
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey != "" {
		env["PEXELS_API_KEY"] = apiKey
	}
	return nil
}

func createDirectories() error {
	dirs := []string{"templates", "output", ".cache/images"}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	fmt.Println(successStyle.Render("✓ Created directories"))
	return nil
}

func generateTemplates() error {
	return runWithSpinner("Generating built-in templates", func() error {
		for _, name := range pptx.TemplateNames() {
			if err := pptx.CreateTemplate(name, filepath.Join("templates", name+".pptx")); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeEnvFile(env map[string]string) error {
	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	order := []string{
		"OPENAI_API_KEY",
		"GROQ_API_KEY",
		"PEXELS_API_KEY",
	}

	for _, key := range order {
		if val, ok := env[key]; ok && val != "" {
			_, _ = fmt.Fprintf(f, "%s=%s\n", key, val)
		}
	}

	fmt.Println(successStyle.Render("✓ Created .env file"))
	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println("  1. Adjust config.yaml if needed")
	fmt.Println("  2. Run: deckmaker generate -t \"your topic\"")
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ " + title))
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/muurk/gridbook/internal/config"
	"github.com/muurk/gridbook/internal/grid"
	"github.com/muurk/gridbook/internal/logging"
	"github.com/muurk/gridbook/internal/story"
	"github.com/muurk/gridbook/internal/tui"
	"github.com/muurk/gridbook/internal/ui"
)

// Global flags
var (
	storyPath string
	logLevel  string
	logFile   string
)

// Command flags
var (
	filterErrors bool
	errorsOnly   bool
	showValidate bool
	forceInit    bool
	setDefault   bool
)

// settings is resolved once per invocation from the config file and flags
var settings *config.Settings

const sampleSource = "built-in sample"

// interactive reports whether init may prompt before overwriting
var interactive = ui.IsInteractive

func init() {
	rootCmd.PersistentFlags().StringVar(&storyPath, "story", "", "Story fixture to open (.yaml or .hcl)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
}

func loadSettings(cmd *cobra.Command, args []string) error {
	s, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	s.Merge(storyPath, logLevel, logFile)
	settings = s
	return nil
}

// initLogging starts the logger. The interactive grid owns the terminal, so
// it logs to a file in the config directory unless one is given; the printing
// commands log to stderr.
func initLogging(interactive bool) error {
	level := settings.LogLevel
	if level == "" {
		level = os.Getenv(logging.LogLevelEnvVar)
	}

	output := settings.LogFile
	if level != "" && output == "" {
		if interactive {
			if err := config.EnsureConfigDir(); err != nil {
				return err
			}
			path, err := config.DefaultLogPath()
			if err != nil {
				return fmt.Errorf("failed to resolve log path: %w", err)
			}
			output = path
		} else {
			output = "stderr"
		}
	}

	return logging.Initialize(level, output)
}

// loadedStory is a story together with the grid built from it
type loadedStory struct {
	story  *story.Story
	state  *grid.State
	source string
}

func loadGrid() (*loadedStory, error) {
	st, source := story.Sample(), sampleSource
	if settings.Story != "" {
		loaded, err := story.Load(settings.Story)
		if err != nil {
			return nil, fmt.Errorf("failed to load story: %w", err)
		}
		st, source = loaded, settings.Story
	}

	state, err := st.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid story %s: %w", source, err)
	}

	logging.LogStoryLoaded(source, len(st.Fields), len(st.Rows))
	return &loadedStory{story: st, state: state, source: source}, nil
}

func (l *loadedStory) title() string {
	if l.story.Title != "" {
		return l.story.Title
	}
	return strings.TrimSuffix(filepath.Base(l.source), filepath.Ext(l.source))
}

// runCmd opens the interactive grid
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive grid",
	Long: `Open a story in the interactive grid.

Rows can be selected with space, extended as a range with shift+arrows or X,
and edited in place with enter. Validation runs after each edit unless
validate_on_edit is disabled in the config file.`,
	Example: `  # Open the built-in sample
  gridbook run

  # Open a fixture showing only invalid rows
  gridbook run --story stories/orders.yaml --filter-errors

  # Debug logging to a custom file
  gridbook run --log-level debug --log-file /tmp/gridbook.log`,
	RunE: runGrid,
}

func init() {
	runCmd.Flags().BoolVar(&filterErrors, "filter-errors", false, "Start with only invalid rows visible")
}

func runGrid(cmd *cobra.Command, args []string) error {
	if err := initLogging(true); err != nil {
		return err
	}
	defer logging.Sync()

	loaded, err := loadGrid()
	if err != nil {
		return err
	}

	unsubscribe := loaded.state.Subscribe(logging.GridObserver(loaded.state))
	defer unsubscribe()

	filter := settings.FilterErrors || filterErrors
	if filter || settings.ValidateOnEdit {
		count, err := grid.NewValidator().Apply(loaded.state)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		logging.LogValidation(count, countInvalidRows(loaded.state))
	}

	model := tui.NewGridModel(loaded.state, tui.Options{
		Title:          loaded.title(),
		FilterErrors:   filter,
		ValidateOnEdit: settings.ValidateOnEdit,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("grid error: %w", err)
	}

	return nil
}

// showCmd prints the grid as a static table
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the grid as a table",
	Long: `Print the story's grid as a static table.

Invalid cells are highlighted once validation has run. --errors-only implies
--validate.`,
	Example: `  # Print the sample grid
  gridbook show

  # Print a fixture with its validation report
  gridbook show --story stories/orders.hcl --validate

  # Only the rows that fail validation
  gridbook show --errors-only`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&errorsOnly, "errors-only", false, "Only print rows with validation errors")
	showCmd.Flags().BoolVar(&showValidate, "validate", false, "Validate and print the error report")
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := initLogging(false); err != nil {
		return err
	}
	defer logging.Sync()

	loaded, err := loadGrid()
	if err != nil {
		return err
	}

	if errorsOnly || showValidate {
		count, err := grid.NewValidator().Apply(loaded.state)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		logging.LogValidation(count, countInvalidRows(loaded.state))
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Grid preview", "gridbook show",
		ui.Detail{Key: "Story", Value: loaded.source},
		ui.Detail{Key: "Rows", Value: strconv.Itoa(loaded.state.Len())},
	)
	p.PrintGrid(loaded.state, errorsOnly)

	if showValidate {
		p.PrintValidationReport(loaded.state)
	}

	return nil
}

// errValidation is returned by validate so the process exits non-zero
var errValidation = errors.New("validation failed")

// validateCmd checks every row and prints the errors
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a story and report cell errors",
	Long: `Run the validator over every row of the story and print each cell
error grouped by row.

Exits with a non-zero status when any cell is invalid, so it can gate CI.`,
	Example: `  # Validate the configured story
  gridbook validate

  # Validate a specific fixture
  gridbook validate --story stories/orders.yaml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := initLogging(false); err != nil {
		return err
	}
	defer logging.Sync()

	loaded, err := loadGrid()
	if err != nil {
		return err
	}

	count, err := grid.NewValidator().Apply(loaded.state)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	invalid := countInvalidRows(loaded.state)
	logging.LogValidation(count, invalid)

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Validation", "gridbook validate", ui.Detail{Key: "Story", Value: loaded.source})
	p.PrintValidationReport(loaded.state)

	if count == 0 {
		p.PrintSuccess("All rows valid",
			ui.Detail{Key: "Rows", Value: strconv.Itoa(loaded.state.Len())},
			ui.Detail{Key: "Fields", Value: strconv.Itoa(len(loaded.state.Fields()))},
		)
		return nil
	}

	p.PrintError("Validation failed",
		fmt.Errorf("%d error(s) in %d of %d row(s)", count, invalid, loaded.state.Len()),
		"Fix the listed cells in "+loaded.source,
		"Run 'gridbook run' to edit the grid interactively",
	)
	cmd.SilenceUsage = true
	return errValidation
}

// initCmd writes the sample story so it can be edited
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the sample story fixture",
	Long: `Write the built-in sample story as a YAML fixture.

The default path is story.yaml in the current directory. An existing file is
only replaced after confirmation, or with --force.`,
	Example: `  # Scaffold story.yaml
  gridbook init

  # Scaffold and make it the default story
  gridbook init stories/orders.yaml --set-default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")
	initCmd.Flags().BoolVar(&setDefault, "set-default", false, "Save the path as the default story in the config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "story.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return fmt.Errorf("init writes YAML fixtures, got %s", path)
	}

	p := ui.NewPrinter(cmd.OutOrStdout())

	if _, err := os.Stat(path); err == nil && !forceInit {
		if !interactive() {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if !ui.ConfirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), path, p.Width()) {
			p.PrintWarning("Story not written", ui.Detail{Key: "Path", Value: path})
			return nil
		}
	}

	sample := story.Sample()
	if err := sample.Save(path); err != nil {
		return err
	}

	details := []ui.Detail{
		{Key: "Path", Value: path},
		{Key: "Fields", Value: strconv.Itoa(len(sample.Fields))},
		{Key: "Rows", Value: strconv.Itoa(len(sample.Rows))},
	}

	if setDefault {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		// Reload so flag overrides are not persisted
		stored, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		stored.Story = abs
		if err := stored.Save(); err != nil {
			return err
		}
		configPath, _ := config.GetConfigPath()
		details = append(details, ui.Detail{Key: "Config", Value: configPath})
	}

	p.PrintSuccess("Story written", details...)
	return nil
}

func countInvalidRows(state *grid.State) int {
	n := 0
	for range state.FilteredRows(true) {
		n++
	}
	return n
}

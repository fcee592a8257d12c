package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"pratdiff/cmd/global"
	"pratdiff/internal"
	"pratdiff/internal/configuration"
	"pratdiff/internal/diff"
	"pratdiff/internal/logging"
)

const (
	exitDifferent = 1
	exitTrouble   = 2
)

var (
	contextLines int
	verbosePaths bool
	colorChoice  string
	algorithm    string
	maxLines     int
	interactive  bool
	watch        bool
	snapshot     string
	completions  string
)

// configuration keys and the flags overriding them
var boundFlags = map[string]string{
	"Context":      "context",
	"Color":        "color",
	"VerbosePaths": "verbose-paths",
	"Algorithm":    "algorithm",
	"MaxLines":     "max-lines",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pratdiff [flags] OLD NEW",
	Short: "Compare files and directory trees using the patience diff algorithm.",
	Long: `Compare files and directory trees using the patience diff algorithm.

Use '-' for either input to read it from standard input. The exit status is 0 if the inputs are
the same, 1 if they differ and 2 if there was trouble.`,
	Args: validateArgs,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		if completions != "" {
			if err := writeCompletions(cmd.Root(), completions, os.Stdout); err != nil {
				logging.Fatal("%v", err)
			}
			return
		}

		configPath, err := configuration.DetectAndReadConfigFile()
		if err != nil {
			logging.Fatal("%v", err)
		}
		logging.Info("Using configuration file at: %s", configPath)
		if err := configuration.LoadConfig(); err != nil {
			logging.Fatal("%v", err)
		}
		if err := configuration.Validate(configPath); err != nil {
			logging.Fatal("%v", err)
		}
		config := configuration.CurrentConfig
		logging.SetLogFile(config.LogFile)

		algo, err := diff.ParseAlgorithm(config.Algorithm)
		if err != nil {
			logging.Fatal("%v", err)
		}

		opts := internal.Options{
			Snapshot:     snapshot,
			Context:      config.Context,
			Algorithm:    algo,
			Color:        setupColor(config.Color, interactive),
			VerbosePaths: config.VerbosePaths,
			MaxLines:     config.MaxLines,
			Interactive:  interactive,
			Watch:        watch,
		}
		if snapshot != "" {
			opts.Rhs = args[0]
		} else {
			opts.Lhs, opts.Rhs = args[0], args[1]
		}

		differ, err := internal.RunApplication(cmd.Context(), opts)
		if err != nil {
			logging.Fatal("%v", err)
		}
		if differ {
			os.Exit(exitDifferent)
		}
	},
}

func validateArgs(cmd *cobra.Command, args []string) error {
	switch {
	case completions != "":
		return cobra.NoArgs(cmd, args)
	case snapshot != "":
		if len(args) != 1 {
			return fmt.Errorf("--snapshot requires exactly one FILE, got %d", len(args))
		}
		return nil
	default:
		return cobra.ExactArgs(2)(cmd, args)
	}
}

// setupColor decides whether the rendered diff is colored and configures the terminal
// libraries accordingly
func setupColor(choice string, interactive bool) bool {
	var enabled bool
	switch choice {
	case configuration.ColorAlways:
		enabled = true
	case configuration.ColorNever:
	default:
		enabled = interactive || (term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == "")
	}

	if enabled {
		// styles are rendered even if stdout is not a terminal
		color.ForceOpenColor()
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}
	return enabled
}

func writeCompletions(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q, expected one of bash, zsh, fish, powershell", shell)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&global.CfgFile, "config", "", "config file (default is ./pratdiff.yaml, $HOME/pratdiff.yaml or /etc/pratdiff/pratdiff.yaml)")
	rootCmd.PersistentFlags().BoolVar(&global.NoStyle, "no-style", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVar(&global.Debug, "debug", false, "Print debug messages")

	rootCmd.Flags().IntVarP(&contextLines, "context", "c", 3, "Number of unchanged lines shown around every change")
	rootCmd.Flags().BoolVarP(&verbosePaths, "verbose-paths", "v", false, "Show full paths instead of stripping their common prefix")
	rootCmd.Flags().StringVar(&colorChoice, "color", configuration.ColorAuto, "Colorize the output: auto, always or never")
	rootCmd.Flags().StringVar(&algorithm, "algorithm", string(diff.Patience), "Diff algorithm: patience or myers")
	rootCmd.Flags().IntVar(&maxLines, "max-lines", 0, "Do not diff inputs with more lines than this, 0 for no limit")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Show the diff in a scrollable pager")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Compare again whenever one of the inputs changes")
	rootCmd.Flags().StringVar(&snapshot, "snapshot", "", "Compare FILE as captured in this ZFS snapshot with the live FILE")
	rootCmd.Flags().StringVar(&completions, "completions", "", "Print the completion script for a shell: bash, zsh, fish or powershell")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Version = global.Version
}

func setupUi() {
	logging.SetDebugEnabled(global.Debug)

	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
		if err := configuration.BindFlags(rootCmd.Flags(), boundFlags); err != nil {
			logging.Fatal("%v", err)
		}
		setupUi()
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitTrouble)
	}
}

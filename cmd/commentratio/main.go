package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rg0now/c-comment-ratio/pkg/config"
	"github.com/rg0now/c-comment-ratio/pkg/editor"
	"github.com/rg0now/c-comment-ratio/pkg/log"
	"github.com/rg0now/c-comment-ratio/pkg/models"
	"github.com/rg0now/c-comment-ratio/pkg/output"
)

var (
	cfgFile  string
	logLevel string
)

func main() {
	rootCmd := newRootCmd()

	err := rootCmd.ExecuteContext(context.Background())
	_ = log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commentratio",
		Short: "Measure and pad the comment ratio of a C function",
		Long: `A tool that measures the comment-to-code line ratio of the C function
enclosing a given line and, when it falls below a minimum, inserts
placeholder comments at the top of the function body.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./.commentratio.yaml or $XDG_CONFIG_HOME/commentratio/.commentratio.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(padCmd())
	rootCmd.AddCommand(configCmd())

	return rootCmd
}

// cursorFlags are shared by analyze and pad.
type cursorFlags struct {
	file  string
	line  int
	line1 int
}

func (f *cursorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "C source file to analyze (- for stdin)")
	cmd.Flags().IntVarP(&f.line, "line", "l", -1, "Zero-based cursor line")
	cmd.Flags().IntVar(&f.line1, "line1", 0, "One-based cursor line, as shown by editors")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagsMutuallyExclusive("line", "line1")
}

// cursor returns the zero-based cursor line.
func (f *cursorFlags) cursor() (int, error) {
	switch {
	case f.line1 > 0:
		return f.line1 - 1, nil
	case f.line >= 0:
		return f.line, nil
	default:
		return 0, fmt.Errorf("one of --line or --line1 is required")
	}
}

// registerConfigFlags adds the flags that override configuration keys.
func registerConfigFlags(cmd *cobra.Command, withInsert bool) {
	cmd.Flags().Float64("min-ratio", config.DefaultMinCommentRatio, "Minimum comment ratio in [0, 1)")
	cmd.Flags().String("policy", models.PolicyFirstPass, "Line classification policy: first-pass or two-phase")
	if withInsert {
		cmd.Flags().String("mode", models.InsertSingle, "Insertion mode: single or iterative")
		cmd.Flags().String("comment-value", config.DefaultAutoInsertCommentValue, "Placeholder comment text (max 60 characters)")
	}
}

// analyzeCmd reports the comment ratio without editing.
func analyzeCmd() *cobra.Command {
	var (
		cf         cursorFlags
		format     string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report the comment ratio of the function around a line",
		Long: `Report code lines, comment lines, the comment ratio and the number of
comments needed to reach the configured minimum.

Examples:
  # Analyze the function containing line 42 (as shown in an editor)
  commentratio analyze --file=parser.c --line1=42

  # Emit JSON instead of text
  commentratio analyze --file=parser.c --line=41 --format=json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			line, err := cf.cursor()
			if err != nil {
				return err
			}

			doc, err := openDocument(cf.file)
			if err != nil {
				return err
			}

			command := editor.NewCommand(*cfg, notifier(cmd.ErrOrStderr()), log.Logger())
			command.DryRun = true

			outcome, err := command.Run(cmd.Context(), doc, cf.file, line)
			if err != nil {
				if errors.Is(err, editor.ErrNoActiveContext) {
					return nil
				}
				return err
			}
			if outcome.Message != "" {
				return nil
			}

			w := output.NewStreamWriter(cmd.OutOrStdout())
			if outputFile != "" {
				w, err = output.NewWriter(outputFile)
				if err != nil {
					return err
				}
			}
			defer w.Close()

			return writeResult(w, format, outcome.Result)
		},
	}

	cf.register(cmd)
	registerConfigFlags(cmd, false)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// padCmd inserts the missing comments.
func padCmd() *cobra.Command {
	var (
		cf     cursorFlags
		write  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "pad",
		Short: "Insert placeholder comments until the function meets the minimum ratio",
		Long: `Analyze the function around a line and insert as many placeholder
comments after its opening brace as are needed to reach the minimum ratio.
The edited source is printed to stdout unless --write is given.

Examples:
  # Pad in place
  commentratio pad --file=parser.c --line1=42 --write

  # Preview numbered placeholders
  commentratio pad --file=parser.c --line1=42 --mode=iterative`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			line, err := cf.cursor()
			if err != nil {
				return err
			}

			doc, err := openDocument(cf.file)
			if err != nil {
				return err
			}

			command := editor.NewCommand(*cfg, notifier(cmd.ErrOrStderr()), log.Logger())
			command.DryRun = dryRun

			outcome, err := command.Run(cmd.Context(), doc, cf.file, line)
			if err != nil {
				if errors.Is(err, editor.ErrNoActiveContext) {
					return nil
				}
				return err
			}
			if outcome.Message != "" {
				return nil
			}

			if err := output.PrintReport(cmd.ErrOrStderr(), outcome.Result); err != nil {
				return err
			}

			if dryRun {
				for _, e := range outcome.Edits {
					fmt.Fprintf(cmd.OutOrStdout(), "%d:%d %q\n", e.Position.Row+1, e.Position.Column, e.Text)
				}
				return nil
			}

			if write {
				if !outcome.Applied {
					return nil
				}
				return writeBack(cmd.OutOrStdout(), cf.file, doc.Text())
			}

			_, err = io.WriteString(cmd.OutOrStdout(), doc.Text())
			return err
		},
	}

	cf.register(cmd)
	registerConfigFlags(cmd, true)
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the edits instead of the edited source")

	return cmd
}

// configCmd prints the effective configuration.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	registerConfigFlags(cmd, true)

	return cmd
}

// loadConfig reads the configuration and applies its log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	if err := log.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	log.Logger().Debugw("configuration loaded",
		"min_comment_ratio", cfg.MinCommentRatio,
		"policy", cfg.Policy,
		"insert_mode", cfg.InsertMode,
	)

	return cfg, nil
}

// openDocument loads a file (or stdin for "-") into an editor buffer.
// An empty document yields a nil Document so the command aborts silently.
func openDocument(path string) (editor.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	return editor.NewBuffer(string(data)), nil
}

// writeBack replaces the contents of path, keeping its permissions.
func writeBack(stdout io.Writer, path, text string) error {
	if path == "-" {
		_, err := io.WriteString(stdout, text)
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(text), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Logger().Infow("wrote file", "path", path)
	return nil
}

// writeResult writes r in the requested format.
func writeResult(w *output.Writer, format string, r models.AnalysisResult) error {
	switch format {
	case "json":
		return w.WriteResult(r)
	case "text", "":
		return w.WriteReport(r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// notifier prints user-facing notices to w.
func notifier(w io.Writer) editor.Notifier {
	return editor.NotifierFunc(func(msg string) {
		fmt.Fprintln(w, msg)
	})
}

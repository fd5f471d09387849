package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"scout/internal/config"
	"scout/internal/engine"
	"scout/internal/fsops"
	"scout/internal/planner"
	"scout/internal/report"
)

var (
	sortMode        string
	sortOperation   string
	sortParallelism int
	sortRollback    bool
	sortReport      string
	sortDryRun      bool
	sortNoConfirm   bool
	sortNoSave      bool
)

var sortCmd = &cobra.Command{
	Use:   "sort SOURCE DESTINATION",
	Short: "Sort the files of SOURCE into extension folders under DESTINATION",
	Long: `Sort the files of SOURCE into subfolders of DESTINATION named after each
file's extension. Files without an extension go to the no_extension folder.

Modes:
  flat    sort only the files directly inside SOURCE (default)
  deep    recurse into subdirectories and sort every file
  freeze  like flat, but park subdirectories verbatim under _Folders

Name collisions in a destination folder are resolved by appending " (N)"
to the new file's name; nothing already in the destination is ever
overwritten. Flags left unset fall back to the values remembered from the
previous run.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, paths, closeLog, err := newEngine()
		if err != nil {
			return err
		}
		defer closeLog()

		settings, err := config.LoadSettings(paths.Settings)
		if err != nil {
			PrintWarning(fmt.Sprintf("Ignoring saved settings: %v", err))
			settings = config.DefaultSettings()
		}
		applySettingsDefaults(cmd, settings)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		req := &engine.RunRequest{
			Source:            args[0],
			Destination:       args[1],
			Mode:              sortMode,
			Kind:              sortOperation,
			Parallelism:       sortParallelism,
			RollbackOnFailure: sortRollback,
			DryRun:            sortDryRun,
		}

		if req.Kind == planner.KindMove && !sortDryRun && !sortNoConfirm {
			if !confirm(cmd, fmt.Sprintf("Move files from %s into %s?", req.Source, req.Destination)) {
				PrintInfo("Aborted.")
				return nil
			}
		}

		var prog *progressObserver
		if !sortDryRun && !jsonOutput {
			prog = newProgressObserver()
			if prog != nil {
				req.Observer = prog
			}
		}

		result, err := eng.Run(ctx, req)
		prog.finish()
		if err != nil {
			return err
		}

		summary := report.NewSummary(result)
		if jsonOutput {
			if err := outputJSON(summary); err != nil {
				return err
			}
		} else {
			PrintInfo(summary.Render())
			if sortDryRun && len(result.Plan.Operations) > 0 {
				PrintSection("Planned operations")
				items := make([]string, 0, len(result.Plan.Operations))
				for _, op := range result.Plan.Operations {
					target := op.Dest
					if rel, relErr := filepath.Rel(result.Destination, op.Dest); relErr == nil {
						target = rel
					}
					items = append(items, fmt.Sprintf("%s: %s", op.Kind, target))
				}
				PrintList(items, 1)
			}
		}

		if path, err := saveReport(summary, paths); err != nil {
			PrintWarning(fmt.Sprintf("Failed to save report: %v", err))
		} else if path != "" && !jsonOutput {
			PrintLabelValue("Report", path)
		}

		if !sortNoSave {
			rememberSettings(settings, req, paths)
		}

		if result.Cancelled {
			return fmt.Errorf("run cancelled")
		}
		if n := result.Failed(); n > 0 {
			return fmt.Errorf("%s failed", PrintCount(n, "operation", "operations"))
		}
		if !jsonOutput && !sortDryRun {
			PrintSuccess(fmt.Sprintf("Sorted %s", PrintCount(result.Completed(), "file", "files")))
		}
		return nil
	},
}

// applySettingsDefaults fills flags the user did not set from the
// remembered settings.
func applySettingsDefaults(cmd *cobra.Command, settings *config.Settings) {
	flags := cmd.Flags()
	if !flags.Changed("mode") && settings.Mode != "" {
		sortMode = settings.Mode
	}
	if !flags.Changed("operation") && settings.Operation != "" {
		sortOperation = settings.Operation
	}
	if !flags.Changed("parallelism") && settings.Parallelism > 0 {
		sortParallelism = settings.Parallelism
	}
	if !flags.Changed("rollback") {
		sortRollback = settings.RollbackOnFailure
	}
	if !flags.Changed("report") && settings.ReportFormat != "" {
		sortReport = settings.ReportFormat
	}
	if !flags.Changed("no-color") && !settings.UseColors {
		noColor = true
		color.NoColor = true
	}
}

// rememberSettings persists the effective run parameters as the next
// run's defaults. Failures only warn; the run itself already finished.
func rememberSettings(settings *config.Settings, req *engine.RunRequest, paths *config.Paths) {
	settings.Source = req.Source
	settings.Destination = req.Destination
	settings.Mode = req.Mode
	settings.Operation = req.Kind
	settings.Parallelism = req.Parallelism
	settings.RollbackOnFailure = req.RollbackOnFailure
	settings.ReportFormat = sortReport
	settings.UseColors = !noColor
	if err := config.SaveSettings(fsops.NewRealFS(), paths.Settings, settings); err != nil {
		PrintWarning(fmt.Sprintf("Failed to save settings: %v", err))
	}
}

// saveReport writes the summary in the requested format and returns the
// saved path, or "" for console-only output.
func saveReport(summary *report.Summary, paths *config.Paths) (string, error) {
	switch sortReport {
	case "", "console":
		return "", nil
	case "json":
		return summary.WriteJSON(fsops.NewRealFS(), paths.Reports)
	case "csv":
		return summary.WriteCSV(fsops.NewRealFS(), paths.Reports)
	default:
		return "", fmt.Errorf("unknown report format %q", sortReport)
	}
}

// confirm asks a yes/no question on the command's input stream.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	sortCmd.Flags().StringVarP(&sortMode, "mode", "m", planner.ModeFlat, "Sort mode (flat, deep, or freeze)")
	sortCmd.Flags().StringVarP(&sortOperation, "operation", "o", planner.KindMove, "File operation (move or copy)")
	sortCmd.Flags().IntVarP(&sortParallelism, "parallelism", "p", 0, "Worker count (0 picks a hardware default)")
	sortCmd.Flags().BoolVar(&sortRollback, "rollback", true, "Roll back completed operations when any operation fails")
	sortCmd.Flags().StringVar(&sortReport, "report", "console", "Report format (console, json, or csv)")
	sortCmd.Flags().BoolVar(&sortDryRun, "dry-run", false, "Show what would be sorted without touching any file")
	sortCmd.Flags().BoolVar(&sortNoConfirm, "no-confirm", false, "Skip the confirmation prompt before moving files")
	sortCmd.Flags().BoolVar(&sortNoSave, "no-save", false, "Do not remember this run's settings as future defaults")
}

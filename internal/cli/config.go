package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"scout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or reset the remembered settings",
	Long: `Manage the settings scout remembers between runs.

Settings are saved after every successful sort (unless --no-save is
given) and pre-fill the sort command's flag defaults.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the remembered settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := config.DefaultPaths()
		if err != nil {
			return err
		}
		settings, err := config.LoadSettings(paths.Settings)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(settings)
		}

		PrintSection("Remembered Settings")
		if settings.Source == "" && settings.Destination == "" {
			PrintEmptyState("No previous run recorded; showing defaults.")
		}
		PrintLabelValue("Source", orUnset(settings.Source))
		PrintLabelValue("Destination", orUnset(settings.Destination))
		PrintLabelValue("Mode", settings.Mode)
		PrintLabelValue("Operation", settings.Operation)
		PrintLabelValue("Report format", settings.ReportFormat)
		PrintLabelValue("Parallelism", parallelismLabel(settings.Parallelism))
		PrintLabelValue("Rollback on failure", strconv.FormatBool(settings.RollbackOnFailure))
		PrintLabelValue("Colors", strconv.FormatBool(settings.UseColors))
		PrintLabelValue("Settings file", paths.Settings)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the remembered settings to defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := config.DefaultPaths()
		if err != nil {
			return err
		}

		if err := os.Remove(paths.Settings); err != nil {
			if os.IsNotExist(err) {
				PrintInfo("Settings were already at defaults.")
				return nil
			}
			return fmt.Errorf("failed to remove settings file: %w", err)
		}

		PrintSuccess("Settings reset to defaults.")
		return nil
	},
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}

func parallelismLabel(n int) string {
	if n <= 0 {
		return "auto"
	}
	return strconv.Itoa(n)
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configResetCmd)
}

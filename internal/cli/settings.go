package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runlog-io/runlog/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage global settings",
	Long:  `Show and change global settings stored in ~/.runlog/settings.yaml.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show global settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a global setting",
	Long: `Change a global setting. Available keys:

  defaults.command      command run when nothing else is configured
  defaults.log_prefix   log filename prefix
  defaults.use_pty      true/false
  defaults.log_dir      directory for log files (empty = current directory)
  propagate_exit        true/false: exit with the child's status
  keep_sessions         how many session records to keep (0 = all)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	printSetting := func(key, value string) {
		fmt.Printf("%s %s\n", styleLabel.Render(key+":"), styleValue.Render(value))
	}

	printSetting("defaults.command", strings.Join(settings.Defaults.Command, " "))
	printSetting("defaults.log_prefix", settings.Defaults.LogPrefix)
	printSetting("defaults.use_pty", strconv.FormatBool(settings.Defaults.UsePTY))
	printSetting("defaults.log_dir", settings.Defaults.LogDir)
	printSetting("propagate_exit", strconv.FormatBool(settings.PropagateExit))
	printSetting("keep_sessions", strconv.Itoa(settings.KeepSessions))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	key, value := args[0], args[1]
	switch key {
	case "defaults.command":
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return fmt.Errorf("command cannot be empty")
		}
		settings.Defaults.Command = fields
	case "defaults.log_prefix":
		if value == "" {
			return fmt.Errorf("log prefix cannot be empty")
		}
		settings.Defaults.LogPrefix = value
	case "defaults.use_pty":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		settings.Defaults.UsePTY = b
	case "defaults.log_dir":
		settings.Defaults.LogDir = value
	case "propagate_exit":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		settings.PropagateExit = b
	case "keep_sessions":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid count %q", value)
		}
		settings.KeepSessions = n
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Println(styleSuccess.Render(fmt.Sprintf("%s = %s", key, value)))
	return nil
}

package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runlog-io/runlog/internal/config"
	"github.com/runlog-io/runlog/internal/models"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a runlog.yaml in the current directory",
	Long: `Create a runlog.yaml in the current directory.

The file records the command to run, the log filename prefix, and
whether to use a pseudo-terminal, so plain 'runlog run' does the right
thing here from now on.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	if config.ProjectExists(cwd) {
		return fmt.Errorf("runlog.yaml already exists here")
	}

	reader := bufio.NewReader(os.Stdin)
	p := models.NewProject(filepath.Base(cwd))

	fmt.Printf("Project name [%s]: ", p.Name)
	if name := readLine(reader); name != "" {
		p.Name = name
	}

	fmt.Printf("Command to run [%s]: ", strings.Join(p.Command, " "))
	if command := readLine(reader); command != "" {
		p.Command = strings.Fields(command)
	}

	fmt.Printf("Log filename prefix [%s]: ", p.LogPrefix)
	if prefix := readLine(reader); prefix != "" {
		p.LogPrefix = prefix
	}

	p.UsePTY = promptYesNo(reader, "Run on a pseudo-terminal?", false)

	if err := config.SaveProject(cwd, p); err != nil {
		return fmt.Errorf("failed to write runlog.yaml: %w", err)
	}

	fmt.Println()
	fmt.Println(styleSuccess.Render("runlog.yaml created."))
	fmt.Println(styleHint.Render("Run 'runlog run' to start logging."))
	return nil
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptYesNo(reader *bufio.Reader, prompt string, defaultVal bool) bool {
	defaultStr := "y/N"
	if defaultVal {
		defaultStr = "Y/n"
	}

	fmt.Printf("%s [%s]: ", prompt, defaultStr)
	response := strings.ToLower(readLine(reader))

	if response == "" {
		return defaultVal
	}
	return response == "y" || response == "yes"
}

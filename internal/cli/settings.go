package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minimute-app/minimute/internal/config"
)

var configureCmd = &cobra.Command{
	Use:     "configure",
	Aliases: []string{"config"},
	Short:   "Configure MiniMute settings",
	Long: `Configure MiniMute settings interactively.

This allows you to modify:
  - The hotkey (Pause, ScrollLock, F13..F24, or a code like 0x13)
  - Whether device changes are watched

A running MiniMute picks up a new hotkey immediately.
Press Enter to keep the current value for any setting.`,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	changed := false

	fmt.Printf("Hotkey [%s]: ", settings.Hotkey)
	key, _ := reader.ReadString('\n')
	key = strings.TrimSpace(key)
	if key != "" && key != settings.Hotkey {
		code, err := config.ParseKey(key)
		if err != nil {
			return fmt.Errorf("invalid hotkey: %w", err)
		}
		settings.Hotkey = config.KeyName(code)
		changed = true
	}

	newWatch := promptYesNoWithCurrent(reader, "Watch for device and mute changes?", settings.WatchDevices)
	if newWatch != settings.WatchDevices {
		settings.WatchDevices = newWatch
		changed = true
	}

	if !changed {
		fmt.Println(styleHint.Render("\nNo changes made."))
		return nil
	}

	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Println(styleSuccess.Render("\nSettings updated."))
	return nil
}

// promptYesNoWithCurrent prompts for a yes/no value showing the current value.
func promptYesNoWithCurrent(reader *bufio.Reader, prompt string, current bool) bool {
	currentStr := "no"
	if current {
		currentStr = "yes"
	}

	fmt.Printf("  %s [%s]: ", prompt, currentStr)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	if response == "" {
		return current
	}
	return response == "y" || response == "yes"
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minimute-app/minimute/internal/audio"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle every microphone once and exit",
	Long: `Toggle every microphone once, exactly like pressing the hotkey.

The first microphone decides: its mute flag is inverted and the result is
applied to all microphones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMics(func(mics *audio.Mics) error {
			switch mics.Toggle() {
			case audio.NowMuted:
				fmt.Println(badgeMuted.Render("Muted"))
			case audio.NowUnmuted:
				fmt.Println(badgeUnmuted.Render("Unmuted"))
			default:
				fmt.Println(badgeUnknown.Render("Mute state unknown"))
			}
			return nil
		})
	},
}

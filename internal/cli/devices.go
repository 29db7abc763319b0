package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minimute-app/minimute/internal/audio"
)

var devicesCmd = &cobra.Command{
	Use:     "devices",
	Aliases: []string{"ls"},
	Short:   "List active microphones and their mute state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMics(func(mics *audio.Mics) error {
			states := mics.Devices()
			for i, d := range states {
				fmt.Printf("  %s %s %s\n",
					styleLabel.Render(fmt.Sprintf("%2d", i)),
					formatMuteBadge(d),
					styleValue.Render(d.Name),
				)
				if d.ID != "" {
					fmt.Printf("       %s\n", styleHint.Render(d.ID))
				}
			}

			if mics.AllMuted(false) {
				fmt.Println(styleSuccess.Render("\nAll microphones muted."))
			}
			return nil
		})
	},
}

func formatMuteBadge(d audio.DeviceState) string {
	switch {
	case d.Err != nil:
		return badgeUnknown.Render("[unknown]")
	case d.Muted:
		return badgeMuted.Render("[muted]  ")
	default:
		return badgeUnmuted.Render("[unmuted]")
	}
}

package playerbar

import "fmt"

// RenderVolume renders the volume indicator, e.g. "vol  80%" or "mute".
func RenderVolume(volume float64, muted bool) string {
	if muted {
		return "mute"
	}
	return fmt.Sprintf("vol %3d%%", int(volume*100+0.5))
}

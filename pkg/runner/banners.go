package runner

import (
	"github.com/projectdiscovery/gologger"
)

const banner = `
 _   _  _____  __
| | | ||  _  |/ /
| | | || |/ /' /
| |_| ||  /\ \ \
 \___/ \_\ \_\_\
`

// ToolName is the name used in banners and config-directory discovery.
const ToolName = `urx`

const version = `v0.1.0`

// showBanner prints the startup banner unless silenced.
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("                        url discovery and reconnaissance\n\n")
}

package runner

import (
	"fmt"
	"time"

	"github.com/projectdiscovery/gologger"
)

// LogInfo prints a general progress message.
func LogInfo(format string, args ...interface{}) {
	gologger.Print().Msgf("%s", fmt.Sprintf(format, args...))
}

// LogSuccess prints a message about a step that completed cleanly.
func LogSuccess(format string, args ...interface{}) {
	gologger.Print().Msgf("%s", fmt.Sprintf(format, args...))
}

// LogDiscovery reports how many URLs a single provider returned for a domain.
func LogDiscovery(provider, domain string, count int) {
	gologger.Print().Msgf("%s: %d urls for %s", provider, count, domain)
}

// LogResults summarizes one invocation's outcome.
func LogResults(domain string, count int, duration time.Duration) {
	gologger.Print().Msgf("%s: %d urls in %s", domain, count, duration.Round(time.Millisecond))
}

// LogStartup announces the domains about to be scanned.
func LogStartup(domains []string) {
	gologger.Print().Msgf("scanning %d domain(s)", len(domains))
}

// LogConfig reports which configuration file, if any, was loaded.
func LogConfig(configPath string) {
	if configPath == "" {
		return
	}
	gologger.Print().Msgf("loaded configuration from %s", configPath)
}

package main

import (
	"os"

	"github.com/projectdiscovery/gologger"

	"github.com/hahwul/urx-sub000/pkg/runner"
)

func main() {
	options := runner.ParseOptions()

	if err := runner.Run(options); err != nil {
		gologger.Error().Msgf("%s\n", err)
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"os"

	"github.com/sciclon2/tls-monitoring/cmd/tlsmon/commands"
	"github.com/sciclon2/tls-monitoring/pkg/checkexec"
)

// Exit codes: 0 all healthy, 1 alerts raised, 2 configuration or execution
// failure. Alerts are a normal, non-crash outcome that CI can branch on.
func main() {
	if err := commands.NewCommand().Execute(); err != nil {
		if errors.Is(err, checkexec.ErrAlertsRaised) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

func main() {
	a := &app{
		clock:    clockwork.NewRealClock(),
		newRunID: uuid.NewString,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}

	if err := newRootCommand(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "glidepath:", err)
		os.Exit(GetExitCode(err))
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/rony4d/creature-flatdata/cmd/creature/launcher"
)

func main() {

	// Hand the full command line to the launcher; it picks the command.
	err := launcher.Launch(os.Args)

	if err != nil {

		// Report the issue on stderr so piped command output stays clean
		fmt.Fprintln(os.Stderr, "Error:", err)

		// Exit with a non-zero status code to indicate failure
		os.Exit(1)
	}
}

// Command craftui browses the CraftUI component catalog from the terminal.
package main

import (
	"os"

	"github.com/craftui/craftui/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// site serves the family space forms.
package main

import (
	"os"

	"github.com/dmitrymomot/familyspace/cmd/site/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

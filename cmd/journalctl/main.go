// journalctl is the admin CLI: storage migrations, weekly recaps and account deletion.
package main

import (
	"fmt"
	"os"

	"github.com/AnshRaj112/jurnal-backend/cmd/journalctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// The todoist-launcher program runs the Todoist launcher plugin from a shell or as a terminal launcher.
//
// Run 'todoist-launcher --help' for the list of commands.
package main // import "github.com/nicolagi/todoist-launcher/cmd/todoist-launcher"

import (
	"os"

	"github.com/nicolagi/todoist-launcher/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr, nil))
}

// Command villagegen is the host-independent command surface from spec §6:
// generate, remove, status, reload, wired the way
// chunk-server/cmd/chunkserver/main.go wires a config and a long-lived
// manager from flag-parsed arguments.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	var err error
	switch sub {
	case "generate":
		err = runGenerate(args)
	case "remove":
		err = runRemove(args)
	case "status":
		err = runStatus(args)
	case "reload":
		err = runReload(args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "villagegen: unknown command %q\n", sub)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "villagegen %s: %v\n", sub, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: villagegen <generate|remove|status|reload> [flags]")
}

func commonFlags(fs *flag.FlagSet) (dataDir, worldName *string) {
	dataDir = fs.String("data", "./villagegen-data", "directory holding persisted village records")
	worldName = fs.String("world", "default", "world name villages are registered against")
	return
}

package main

import (
	"os"

	"modelswitch/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}

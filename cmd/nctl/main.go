package main

import (
	"os"

	"github.com/nctl-dev/nctl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

package main

import (
	"os"

	"github.com/vale-lint/valecore/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

package main

import (
	"os"

	"github.com/zypperops/zyppmod/cmd/zyppmod/commands"
)

func main() {
	os.Exit(commands.Execute())
}

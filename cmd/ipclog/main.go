package main

import (
	"os"

	"github.com/Station-Manager/ipclog/cmd/ipclog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

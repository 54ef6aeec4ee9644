package main

import (
	"os"

	"github.com/seojin/labquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/lunarepo/lunar/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

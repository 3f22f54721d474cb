package main

import (
	"errors"
	"log"
	"os"

	"tableflip.dev/timelined/pkg/commands"
	"tableflip.dev/timelined/pkg/printers"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		if !errors.Is(err, printers.ErrReported) {
			log.Printf("error during command execution: %v", err)
		}
		os.Exit(1)
	}
}

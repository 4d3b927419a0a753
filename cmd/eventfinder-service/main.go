package main

import (
	"os"

	"github.com/civicmatch/eventfinder/eventservice"
)

func main() {
	if err := eventservice.Run(); err != nil {
		os.Exit(1)
	}
}

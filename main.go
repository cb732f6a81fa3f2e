package main

import (
	"log"

	"github.com/iamsahilydv/reno-test/config"

	"github.com/iamsahilydv/reno-test/cmd"
)

func main() {
	log.Printf("reno-test %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}

package main

import (
	"log"

	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"log"

	"fundscore/cmd/fundscore/commands"

	_ "github.com/lib/pq"
)

func main() {
	if err := commands.Execute(); err != nil {
		log.Fatal(err)
	}
}

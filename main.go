package main

import "github.com/kamal-hamza/deckindex/cmd"

func main() {
	cmd.Execute()
}

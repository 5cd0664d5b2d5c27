package main

import "github.com/agentic-research/treegen/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/agentic-research/structree/cmd"

func main() {
	cmd.Execute()
}

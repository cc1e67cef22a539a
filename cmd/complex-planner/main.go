package main

import "github.com/andrescamacho/complex-planner/internal/adapters/cli"

func main() {
	cli.Execute()
}

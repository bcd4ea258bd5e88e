package main

import "github.com/k7f/ascetic/internal/cli"

func main() {
	cli.Main()
}

package main

import cmd "github.com/rohmanhakim/robots-directives/internal/cli"

func main() {
	cmd.Execute()
}

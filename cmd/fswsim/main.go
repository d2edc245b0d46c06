package main

import "github.com/orbitkit/fswsim/cmd/fswsim/cmd"

func main() {
	cmd.Execute()
}

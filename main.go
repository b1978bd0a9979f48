package main

import "github.com/FluidXR/questdoctor/cmd"

func main() {
	cmd.Execute()
}

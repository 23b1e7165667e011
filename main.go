package main

import "github.com/jedbrown/fem-2d/cmd"

func main() {
	cmd.Execute()
}

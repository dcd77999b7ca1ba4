package main

import "github.com/planwise/planwise/cmd"

func main() {
	cmd.Execute()
}

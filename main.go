package main

import "pratdiff/cmd"

func main() {
	cmd.Execute()
}

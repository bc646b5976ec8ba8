package main

import "phototransfer/cmd/phototransfer/cmd"

func main() {
	cmd.Execute()
}

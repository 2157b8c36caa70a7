package main

import "arcrag/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/emrgen/bioref/cmd"

func main() {
	cmd.Execute()
}

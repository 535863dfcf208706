package main

import "github.com/databacker/devdb/cmd"

func main() {
	cmd.Execute()
}

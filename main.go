package main

import "github.com/ewalden/drift/cmd"

func main() {
	cmd.Execute()
}

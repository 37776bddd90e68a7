package main

import "github.com/goliatone/go-schemaform/cmd/schemaform/cmd"

func main() {
	cmd.Execute()
}

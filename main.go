package main

import "github.com/harry-hov/docwriter/cmd"

func main() {
	cmd.Execute()
}

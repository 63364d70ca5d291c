package main

import "github.com/shopforge/shopctl/cmd/shopctl/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/keurnel/x86codec/cmd/cli/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/OpenTraceLab/OpenTraceBAP/cmd/bap/cmd"

func main() {
	cmd.Execute()
}

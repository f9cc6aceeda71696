package main

import (
	"fmt"
	"os"

	"fjacquet/debtsolver/cmd/balances"
	"fjacquet/debtsolver/cmd/root"
	"fjacquet/debtsolver/cmd/serve"
	"fjacquet/debtsolver/cmd/settle"
)

func init() {
	// 1. Initialize the root command and its persistent flags
	root.Init()

	// 2. Add all subcommands
	root.Cmd.AddCommand(settle.Cmd)
	root.Cmd.AddCommand(balances.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

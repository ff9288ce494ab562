package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/folio/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Complete("pfu")

	commander := subcommands.NewCommander(flag.CommandLine, "pfu")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	// update is the default subcommand
	if flag.NArg() == 0 {
		flag.CommandLine.Parse(append(os.Args[1:], "update"))
	}
	os.Exit(int(commander.Execute(context.Background())))
}

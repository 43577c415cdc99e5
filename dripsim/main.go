package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/drip/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine, the environment is used as is.
	_ = godotenv.Load()

	cmd.Completion().Complete("dripsim")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

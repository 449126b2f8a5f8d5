package main

import (
	"os"

	"github.com/bnema/snapdb/internal/adapters/in/cli"
	"github.com/bnema/snapdb/pkg/version"
)

var (
	buildVersion string
	commit       string
	date         string
)

func main() {
	version.Set(buildVersion, commit, date)
	os.Exit(cli.Execute(os.Args[1:], os.Stderr))
}

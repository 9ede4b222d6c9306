package main

import (
	"github.com/polyglot-hello/polyglot/internal/cli"
)

func main() {
	cli.Execute(cli.NewScaffoldCmd())
}

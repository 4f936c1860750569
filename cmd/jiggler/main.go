package main

import (
	"context"
	"fmt"
	"os"

	"github.com/stigoleg/mouse-jiggler/internal/cli"
)

const appVersion = "1.0.0"

func main() {
	if err := cli.NewRootCommand(appVersion).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

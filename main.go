package main

import (
	"fmt"
	"os"

	"github.com/0ameyasr/mtfks/ui"
)

func main() {
	app := ui.PrepareConsoleApp()
	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

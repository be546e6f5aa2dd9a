// Package main is the sha2stream CLI entrypoint.
package main

import (
	"os"

	"sha2stream/internal/app"
)

func main() {
	application := app.New()
	os.Exit(application.Run(os.Args[1:]))
}

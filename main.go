package main

import (
	"os"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}

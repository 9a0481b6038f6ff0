package main

import (
	"os"

	"github.com/deskappio/deskapp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

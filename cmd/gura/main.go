package main

import (
	"os"

	"github.com/gura-conf/gura-go/cmd/gura/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

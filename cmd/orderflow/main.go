package main

import (
	"os"

	"github.com/Keluni100/orderflow/cmd/orderflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/abhisek/querygen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

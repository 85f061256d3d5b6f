package main

import (
	"os"

	"github.com/adjosc/reddit-tiktok-creator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

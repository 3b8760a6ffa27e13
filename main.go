package main

import (
	"os"

	"github.com/Shreyas-077/Diligent-Assessment/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

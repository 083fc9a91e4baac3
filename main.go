package main

import (
	"os"

	"github.com/tanpawarit/Chative-Store-Assistant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

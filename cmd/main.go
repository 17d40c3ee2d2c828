package main

import (
	"os"

	"github.com/soundprediction/faqmatch/cmd/faqmatch"
)

func main() {
	if err := faqmatch.Execute(); err != nil {
		os.Exit(1)
	}
}

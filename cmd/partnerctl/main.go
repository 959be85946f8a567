package main

import (
	"fmt"
	"os"

	"github.com/zestro/zestro-go/internal/cli/partner"
)

func main() {
	if err := partner.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

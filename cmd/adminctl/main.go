package main

import (
	"fmt"
	"os"

	"github.com/zestro/zestro-go/internal/cli/admin"
)

func main() {
	if err := admin.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

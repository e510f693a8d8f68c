package main

import (
	"fmt"
	"os"

	"github.com/abdidvp/expectfix/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "expectfix:", err)
		os.Exit(1)
	}
}

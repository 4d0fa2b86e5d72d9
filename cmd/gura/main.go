package main

import (
	"fmt"
	"os"

	"github.com/gura-conf/gura-go/cmd/gura/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

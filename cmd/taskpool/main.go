// Command taskpool runs a demonstration workload on a worker pool.
package main

import (
	"fmt"
	"os"
)

func main() {
	rootCmd, err := NewRootCmd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

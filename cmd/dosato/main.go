// Command dosato is the Dosato language's interpreter CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Robotnik08/dosato/cmd/dosato/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Command aec-encode compresses WAV files with the CCSDS adaptive entropy
// encoder and inspects the resulting bitstreams.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "aec-encode",
		Short: "CCSDS 121.0-B-2 adaptive entropy encoder",
	}
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newInspectCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

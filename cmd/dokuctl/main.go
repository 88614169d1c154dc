// dokuctl is a small command line client for DokuWiki wikis, built on
// the XML-RPC client in this module. Connection settings come from the
// DOKUWIKI_* environment variables.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

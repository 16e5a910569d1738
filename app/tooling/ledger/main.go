// This program provides a command line tool for working with a running
// ledger node over its public API.
package main

import "github.com/ardanlabs/powledger/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}

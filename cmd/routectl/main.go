// Command routectl inspects route files and serves them with a router that
// describes every matched request.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// Command shoppr serves the shoppr REST API and manages its database.
package main

import "github.com/mesh-intelligence/shoppr/internal/cli"

func main() {
	cli.Execute()
}

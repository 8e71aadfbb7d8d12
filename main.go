// Command tunebrew plays generated songs in the terminal.
package main

import "github.com/llehouerou/tunebrew/internal/cli"

func main() {
	cli.Execute()
}

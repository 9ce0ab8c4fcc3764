// Command hiit is an interval training timer for the terminal.
package main

import "github.com/faintdeception/hiit-cli/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/aircher/ion/cmd"

func main() {
	cmd.Execute()
}

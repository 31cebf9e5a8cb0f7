package main

import "github.com/radiantjournal/radiant/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/KaramelBytes/indiaviz-cli/cmd"

func main() {
	cmd.Execute()
}

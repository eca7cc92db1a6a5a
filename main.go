package main

import "github.com/notargets/bdelements/cmd"

func main() {
	cmd.Execute()
}

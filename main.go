package main

import "github.com/fennig/focusping/cmd"

func main() {
	cmd.Execute()
}

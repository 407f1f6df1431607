package main

import "github.com/dmoura/askbox/internal/commands"

func main() {
	commands.Execute()
}

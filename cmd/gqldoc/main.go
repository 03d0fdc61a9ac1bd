package main

import "github.com/sanixdarker/gqldoc/internal/cli"

func main() {
	cli.Execute()
}

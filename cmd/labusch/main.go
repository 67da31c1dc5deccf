package main

import "Labusch/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/pfrederiksen/camara-gastos/internal/cli"

func main() {
	cli.Execute()
}

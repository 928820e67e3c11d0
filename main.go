package main

import "transcompare/cmd/cli"

func main() {
	cli.Execute()
}

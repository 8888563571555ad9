package main

import "github.com/ardanlabs/explorer/app/tooling/amount/cmd"

func main() {
	cmd.Execute()
}

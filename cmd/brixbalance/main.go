package main

import "github.com/aalvaropc/brixbalance/internal/cli"

func main() {
	cli.Execute()
}

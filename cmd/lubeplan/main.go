package main

import "github.com/oceanline/lubeplan-go/internal/adapters/cli"

func main() {
	cli.Execute()
}

package main

import "pet-adoption-catalog/cmd/client/cmd"

func main() {
	cmd.Execute()
}

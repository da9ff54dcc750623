package main

import "gratuity-box/cmd/gratuity-cli/cmd"

func main() {
	cmd.Execute()
}

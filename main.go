package main

import "card-tracker/cmd"

func main() {
	cmd.Execute()
}

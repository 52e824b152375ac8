package main

import "living_pages/cmd"

func main() {
	cmd.Execute()
}

package main

import "framecut/cmd"

func main() {
	cmd.Execute()
}

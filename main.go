package main

import "ngs/cmd"

func main() {
	cmd.Execute()
}

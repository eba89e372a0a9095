package main

import "github.com/mvellis/cryptit/cmd"

func main() {
	cmd.Execute()
}

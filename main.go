package main

import "github.com/KaramelBytes/wordloom/cmd"

func main() {
	cmd.Execute()
}

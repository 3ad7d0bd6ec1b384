package main

import "github.com/fakeyudi/lapwing/cmd"

func main() {
	cmd.Execute()
}

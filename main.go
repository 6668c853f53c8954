package main

import "github.com/snippe-sh/snippe-go/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/gaurav-prasanna/rfpdraft/cmd"

func main() {
	cmd.Execute()
}

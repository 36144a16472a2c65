package main

import "github.com/arloliu/foamio/cmd/foamdump/cmd"

func main() {
	cmd.Execute()
}

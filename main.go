package main

import "nathanbeddoewebdev/staffctl/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/cgint/pi-session-to-md/cmd"

func main() {
	cmd.Execute()
}

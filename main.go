package main

import "github.com/mouse-blink/targetpath/cmd"

func main() {
	cmd.Execute()
}

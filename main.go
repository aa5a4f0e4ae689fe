package main

import "github.com/kozaktomas/namevibe/cmd"

func main() {
	cmd.Execute()
}

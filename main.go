package main

import "sustainabot/src/handler/cli"

func main() {
	cli.Run()
}

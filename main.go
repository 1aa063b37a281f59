package main

import "github.com/kamal-hamza/assethat/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/jsphweid/makampitch/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/urbanmobility/mobidatasim/cmd"

func main() {
	cmd.Execute()
}

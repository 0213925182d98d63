package main

import "github.com/veedubyou/split-studio/src/studio/cmd"

func main() {
	cmd.Execute()
}

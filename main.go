package main

import "github.com/jsphweid/tunesheet/cmd"

func main() {
	cmd.Execute()
}

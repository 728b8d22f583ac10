package main

import "github.com/recorderlab-dev/recorder-insight/pkg/cli"

func main() {
	cli.Execute()
}

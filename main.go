package main

import "task-track-system.com/task-track-system/cmd"

func main() {
	cmd.Execute()
}

package main

import "task-market.com/task-market/cmd"

func main() {
	cmd.Execute()
}

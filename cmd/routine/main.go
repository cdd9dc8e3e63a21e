package main

import "github.com/AndrejKiraly/RoutineGamification/cmd/routine/root"

func main() {
	root.Execute()
}

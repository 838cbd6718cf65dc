package main

import "github.com/olincollege/fairytale-sound-effects/cmd"

func main() {
	cmd.Execute()
}

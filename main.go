package main

import "github.com/circadianhq/circadian/cmd"

func main() {
	cmd.Execute()
}

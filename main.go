package main

import (
	"github.com/Manu343726/ocho86/cmd"
)

func main() {
	cmd.Execute()
}

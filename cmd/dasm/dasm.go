package dasm

import (
	"github.com/spf13/cobra"
)

// dasmCmd represents the dasm command group
var DasmCmd = &cobra.Command{
	Use:   "dasm",
	Short: "Disassemble 8086 machine code",
}

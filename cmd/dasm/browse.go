package dasm

import (
	"fmt"
	"os"

	"github.com/Manu343726/ocho86/pkg/dasm"
	"github.com/Manu343726/ocho86/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse <file>",
	Short: "Browse a disassembled binary interactively",
	Long: `Decodes a raw 8086 machine code file and opens a read-only two-pane
browser: the instruction listing on the left, the encoding details of the
selected instruction on the right.

Keys:
  up/down  select instruction
  q        quit`,
	Args: cobra.ExactArgs(1),
	Run:  runBrowse,
}

func init() {
	DasmCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	instructions, err := dasm.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error disassembling %v: %v\n", args[0], err)
		os.Exit(2)
	}

	if err := browse(args[0], instructions); err != nil {
		fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
		os.Exit(3)
	}
}

// Renders the detail pane text for one instruction
func instructionDetails(instruction *dasm.Instruction) string {
	hexBytes := utils.Map(instruction.Bytes, func(b byte) string {
		return fmt.Sprintf("%02x", b)
	})
	binBytes := utils.Map(instruction.Bytes, func(b byte) string {
		return utils.FormatUintBinary(uint64(b), 8)
	})

	return fmt.Sprintf(
		"offset: %v\nbytes:  %v\n        %v\nformat: %v\nwidth:  %v\n\n%v\n",
		utils.FormatUintHex(uint64(instruction.Offset), 4),
		utils.FormatSlice(hexBytes, " "),
		utils.FormatSlice(binBytes, " "),
		instruction.Format,
		instruction.Width.Qualifier(),
		instruction.String(),
	)
}

func browse(title string, instructions []dasm.Instruction) error {
	app := tview.NewApplication()

	details := tview.NewTextView()
	details.SetBorder(true).SetTitle(" details ")

	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true).SetTitle(fmt.Sprintf(" %v ", title))

	for i := range instructions {
		instruction := &instructions[i]
		list.AddItem(fmt.Sprintf("%04x  %v", instruction.Offset, instruction.String()), "", 0, nil)
	}

	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index >= 0 && index < len(instructions) {
			details.SetText(instructionDetails(&instructions[index]))
		}
	})

	if len(instructions) > 0 {
		details.SetText(instructionDetails(&instructions[0]))
	}

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyEscape {
			app.Stop()
			return nil
		}
		return event
	})

	flex := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(details, 0, 1, false)

	return app.SetRoot(flex, true).Run()
}

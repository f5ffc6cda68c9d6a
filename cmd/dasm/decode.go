package dasm

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Manu343726/ocho86/pkg/dasm"
	"github.com/Manu343726/ocho86/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	decodeOutputFile string
	decodeColor      bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Disassemble a binary file into a NASM listing",
	Long: `Reads a raw 8086 machine code file and writes the disassembled NASM
listing to stdout, or to a file with the --output flag.

The whole file is treated as instruction bytes: no header, no length prefix.
Decoding is all-or-nothing; on the first unrecognized or unsupported byte the
command reports its offset and bit pattern and produces no listing.

Example:
  ocho86 dasm decode program.bin
  ocho86 dasm decode program.bin -o program.asm`,
	Args: cobra.ExactArgs(1),
	Run:  runDecode,
}

func init() {
	DasmCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeOutputFile, "output", "o", "", "Output file. If not specified, the listing is dumped to stdout.")
	decodeCmd.Flags().BoolVarP(&decodeColor, "color", "c", false, "Syntax highlight the listing (stdout only)")
}

func runDecode(cmd *cobra.Command, args []string) {
	inputPath := args[0]

	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	slog.Debug("loaded binary", "path", inputPath, "bytes", len(data))

	listing, err := dasm.Disassemble(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error disassembling %v: %v\n", inputPath, err)
		os.Exit(2)
	}

	if decodeOutputFile != "" {
		file, err := os.Create(decodeOutputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		fmt.Fprintln(file, listing)
		return
	}

	if decodeColor {
		listing = utils.HighlightAsmListing(listing)
	}
	fmt.Println(listing)
}

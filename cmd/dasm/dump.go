package dasm

import (
	"fmt"
	"os"

	"github.com/Manu343726/ocho86/pkg/dasm"
	"github.com/Manu343726/ocho86/pkg/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Dump the decoded instructions in detail",
	Long: `Decodes a raw 8086 machine code file and dumps every instruction with its
offset, raw bytes and operands.

With --format text each instruction is drawn as an ascii frame showing its
encoding bit fields. With --format yaml the decoded instructions are emitted
as a YAML document.`,
	Args: cobra.ExactArgs(1),
	Run:  runDump,
}

func init() {
	DasmCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "Output format: text or yaml")
}

func runDump(cmd *cobra.Command, args []string) {
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

	switch dumpFormat {
	case "text":
		dumpText(instructions)
	case "yaml":
		dumpYaml(instructions)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format '%v' (expected text or yaml)\n", dumpFormat)
		os.Exit(1)
	}
}

func dumpText(instructions []dasm.Instruction) {
	for i := range instructions {
		instruction := &instructions[i]

		hexBytes := utils.Map(instruction.Bytes, func(b byte) string {
			return fmt.Sprintf("%02x", b)
		})

		fmt.Printf("%04x  %v  ; %v\n\n", instruction.Offset, instruction.String(), utils.FormatSlice(hexBytes, " "))
		fmt.Println(utils.AsciiFrame(frameFields(instruction), len(instruction.Bytes)*8, "bits", utils.AsciiFrameUnitLayout_LeftToRight, 2))
	}
}

// One decoded instruction as serialized by --format yaml
type instructionDump struct {
	Offset int    `yaml:"offset"`
	Bytes  string `yaml:"bytes"`
	Op     string `yaml:"op"`
	Dest   string `yaml:"dest"`
	Source string `yaml:"source"`
	Text   string `yaml:"text"`
}

func dumpYaml(instructions []dasm.Instruction) {
	dump := utils.Map(instructions, func(instruction dasm.Instruction) instructionDump {
		hexBytes := utils.Map(instruction.Bytes, func(b byte) string {
			return fmt.Sprintf("%02x", b)
		})

		return instructionDump{
			Offset: instruction.Offset,
			Bytes:  utils.FormatSlice(hexBytes, " "),
			Op:     instruction.Op.String(),
			Dest:   instruction.Dest.String(),
			Source: instruction.Source.String(),
			Text:   instruction.String(),
		}
	})

	out, err := yaml.Marshal(dump)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshalling instructions: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(string(out))
}

// A named bit field within an instruction encoding, in stream order
type fieldSpec struct {
	name  string
	width int
}

// Returns the bit-field layout of the instruction's encoding. Fields are
// listed in stream order: byte 0's most significant bit first.
func fieldSpecs(instruction *dasm.Instruction) []fieldSpec {
	trailing := func(names ...string) []fieldSpec {
		return utils.Map(names, func(name string) fieldSpec {
			return fieldSpec{name: name, width: 8}
		})
	}

	// Names of the bytes consumed past the given count, as "name lo"/"name hi"
	// pairs when two bytes were consumed
	tailBytes := func(consumed int, name string) []string {
		switch len(instruction.Bytes) - consumed {
		case 0:
			return nil
		case 1:
			return []string{name}
		default:
			return []string{name + " lo", name + " hi"}
		}
	}

	switch instruction.Format {
	case dasm.Format_RegisterOrMemoryToOrFromRegister:
		specs := []fieldSpec{{"opcode", 6}, {"d", 1}, {"w", 1}, {"mod", 2}, {"reg", 3}, {"rm", 3}}
		return append(specs, trailing(tailBytes(2, "disp")...)...)

	case dasm.Format_ImmediateToRegister:
		specs := []fieldSpec{{"opcode", 4}, {"w", 1}, {"reg", 3}}
		return append(specs, trailing(tailBytes(1, "data")...)...)

	case dasm.Format_ImmediateToRegisterOrMemory:
		var specs []fieldSpec
		if instruction.Op == dasm.Op_Mov {
			specs = []fieldSpec{{"opcode", 7}, {"w", 1}, {"mod", 2}, {"reg", 3}, {"rm", 3}}
		} else {
			specs = []fieldSpec{{"opcode", 6}, {"s", 1}, {"w", 1}, {"mod", 2}, {"op", 3}, {"rm", 3}}
		}

		displacementBytes := resolverBytes(instruction.Bytes[1])

		names := []string{}
		switch displacementBytes {
		case 1:
			names = append(names, "disp")
		case 2:
			names = append(names, "disp lo", "disp hi")
		}
		names = append(names, tailBytes(2+displacementBytes, "data")...)
		return append(specs, trailing(names...)...)

	case dasm.Format_MemoryToAccumulator, dasm.Format_AccumulatorToMemory:
		specs := []fieldSpec{{"opcode", 7}, {"w", 1}}
		return append(specs, trailing(tailBytes(1, "addr")...)...)

	case dasm.Format_ImmediateToAccumulator:
		specs := []fieldSpec{{"opcode", 7}, {"w", 1}}
		return append(specs, trailing(tailBytes(1, "data")...)...)
	}

	// Formats with no decoder never reach the dump
	return trailing(tailBytes(0, "byte")...)
}

// Number of displacement bytes the addressing-mode resolver consumed for the
// given mod/reg/rm byte
func resolverBytes(modRegRM byte) int {
	view := utils.CreateBitView(&modRegRM)
	mod := view.Read(6, 2)
	rm := view.Read(0, 3)

	switch mod {
	case 0b00:
		if rm == 0b110 {
			return 2
		}
		return 0
	case 0b01:
		return 1
	case 0b10:
		return 2
	}
	return 0
}

// Builds the labeled ascii-frame fields of the instruction, annotating each
// field name with its bit value
func frameFields(instruction *dasm.Instruction) []utils.AsciiFrameField {
	specs := fieldSpecs(instruction)
	fields := make([]utils.AsciiFrameField, 0, len(specs))

	bit := 0
	for _, spec := range specs {
		b := instruction.Bytes[bit/8]
		value := utils.CreateBitView(&b).Read(8-bit%8-spec.width, spec.width)

		fields = append(fields, utils.AsciiFrameField{
			Name:  fmt.Sprintf("%v %v", spec.name, utils.FormatUintBinary(uint64(value), spec.width)),
			Begin: bit,
			Width: spec.width,
		})

		bit += spec.width
	}

	return fields
}

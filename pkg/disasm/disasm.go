// Package disasm walks a byte stream against the CPU's own instruction
// tables and renders assembly text, so the listing it produces can never
// drift from what Step would actually execute.
package disasm

import (
	"fmt"

	"github.com/oisee/gbz80/pkg/cpu"
)

// Line is one decoded instruction: its address, raw bytes, and rendered
// text. Unknown opcodes still produce a Line, with Text set to "?" and Raw
// holding the undecoded byte (both bytes for a CB-prefixed pair), so a caller can keep walking instead
// of aborting the whole listing.
type Line struct {
	Addr uint16
	Raw  []byte
	Text string
}

// Walk decodes length bytes of code starting at addr out of read, which is
// typically an MMU's Read method but accepts any byte-addressable source so
// tests can disassemble a plain slice.
func Walk(read func(uint16) uint8, addr uint16, length int) []Line {
	var lines []Line
	end := uint32(addr) + uint32(length)
	for pc := uint32(addr); pc < end; {
		line, size := decodeOne(read, uint16(pc))
		lines = append(lines, line)
		pc += uint32(size)
	}
	return lines
}

func decodeOne(read func(uint16) uint8, pc uint16) (Line, int) {
	opcode := read(pc)

	if opcode == 0xCB {
		sub := read(pc + 1)
		entry := cpu.CBTable[sub]
		if entry == nil {
			return unknownLine(pc, opcode, sub), 2
		}
		raw := []byte{opcode, sub}
		return Line{Addr: pc, Raw: raw, Text: entry.Mnemonic}, 2
	}

	entry := cpu.BaseTable[opcode]
	if entry == nil {
		return unknownLine(pc, opcode), 1
	}

	length := int(entry.Length)
	if length == 0 {
		length = 1 // defensive: every table entry has Length >= 1
	}
	raw := make([]byte, length)
	for i := range raw {
		raw[i] = read(pc + uint16(i))
	}

	text := renderMnemonic(entry.Mnemonic, raw, pc)
	return Line{Addr: pc, Raw: raw, Text: text}, length
}

func unknownLine(pc uint16, raw ...uint8) Line {
	return Line{Addr: pc, Raw: raw, Text: "?"}
}

// renderMnemonic substitutes the "nn", "n", and "r8" placeholders an
// Instruction.Mnemonic carries with the operand bytes actually decoded,
// scanning the mnemonic string for tokens rather than keeping a separate
// format-string table.
func renderMnemonic(mnemonic string, raw []byte, pc uint16) string {
	buf := make([]byte, 0, len(mnemonic)+6)
	for i := 0; i < len(mnemonic); i++ {
		switch {
		case i+1 < len(mnemonic) && mnemonic[i] == 'r' && mnemonic[i+1] == '8':
			target := int32(pc) + int32(len(raw)) + int32(int8(raw[len(raw)-1]))
			buf = append(buf, fmt.Sprintf("%04Xh", uint16(target))...)
			i++
		case mnemonic[i] == 'n' && i+1 < len(mnemonic) && mnemonic[i+1] == 'n':
			imm := uint16(raw[1]) | uint16(raw[2])<<8
			buf = appendHex16(buf, imm)
			i++
		case mnemonic[i] == 'n':
			imm := raw[len(raw)-1]
			buf = appendHex8(buf, imm)
		default:
			buf = append(buf, mnemonic[i])
		}
	}
	return string(buf)
}

func appendHex8(buf []byte, v uint8) []byte {
	const hex = "0123456789ABCDEF"
	if v >= 0xA0 {
		buf = append(buf, '0')
	}
	return append(buf, hex[v>>4], hex[v&0x0F], 'h')
}

func appendHex16(buf []byte, v uint16) []byte {
	const hex = "0123456789ABCDEF"
	if v>>12 >= 0xA {
		buf = append(buf, '0')
	}
	return append(buf, hex[v>>12], hex[(v>>8)&0x0F], hex[(v>>4)&0x0F], hex[v&0x0F], 'h')
}

// Minify collapses each run of four or more consecutive, identical filler
// lines (raw 0x00 or 0xFF opcode bytes with no operand) into a single
// summary line, so a listing over a mostly-empty ROM stays readable.
// Shorter runs are kept line by line.
func Minify(lines []Line) []Line {
	var out []Line
	i := 0
	for i < len(lines) {
		j := i
		for j < len(lines) && isFiller(lines[j]) && lines[j].Raw[0] == lines[i].Raw[0] {
			j++
		}
		if j-i >= 4 {
			out = append(out, Line{
				Addr: lines[i].Addr,
				Raw:  lines[i].Raw,
				Text: fmt.Sprintf("; %d bytes of %#02x filler", j-i, lines[i].Raw[0]),
			})
			i = j
			continue
		}
		out = append(out, lines[i])
		i++
	}
	return out
}

func isFiller(l Line) bool {
	return len(l.Raw) == 1 && (l.Raw[0] == 0x00 || l.Raw[0] == 0xFF)
}

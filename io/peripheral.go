// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"encoding/binary"
	"fmt"
	"iter"
	"strings"
)

const (
	FRAMEBUFFER_ADDR   = 0x8000
	FRAMEBUFFER_WIDTH  = 160
	FRAMEBUFFER_HEIGHT = 120
	FRAMEBUFFER_STRIDE = FRAMEBUFFER_WIDTH / 8                  // Bytes per row.
	FRAMEBUFFER_SIZE   = FRAMEBUFFER_STRIDE * FRAMEBUFFER_HEIGHT // 0x960 bytes.

	SWITCHES_ADDR = 0x8A00
	BUTTONS_ADDR  = 0x8A02
	LEDS_ADDR     = 0x8A04

	SWITCH_COUNT = 16
	LED_COUNT    = 16

	PERIPHERAL_END = LEDS_ADDR + 2 // First address past the peripherals.
)

// Button bits, as read from BUTTONS_ADDR.
const (
	BUTTON_CENTER = uint8(1 << 0)
	BUTTON_RIGHT  = uint8(1 << 1)
	BUTTON_LEFT   = uint8(1 << 2)
	BUTTON_DOWN   = uint8(1 << 3)
	BUTTON_UP     = uint8(1 << 4)

	BUTTON_MASK = uint8(0x1f)
)

// Peripherals is a view of the devices mapped into a memory image.
type Peripherals struct {
	memory []byte
}

// NewPeripherals maps the peripherals onto a memory image.
func NewPeripherals(memory []byte) (pr *Peripherals, err error) {
	if len(memory) < PERIPHERAL_END {
		err = fmt.Errorf("%w: %d bytes", ErrMemorySize, len(memory))
		return
	}

	pr = &Peripherals{memory: memory}
	return
}

// Framebuffer returns the framebuffer bytes, aliased to memory.
func (pr *Peripherals) Framebuffer() []byte {
	return pr.memory[FRAMEBUFFER_ADDR : FRAMEBUFFER_ADDR+FRAMEBUFFER_SIZE]
}

// Pixel returns the state of the pixel at column x of row y.
func (pr *Peripherals) Pixel(x, y int) (lit bool, err error) {
	if x < 0 || x >= FRAMEBUFFER_WIDTH || y < 0 || y >= FRAMEBUFFER_HEIGHT {
		err = fmt.Errorf("%w: (%d,%d)", ErrPixel, x, y)
		return
	}

	b := pr.memory[FRAMEBUFFER_ADDR+y*FRAMEBUFFER_STRIDE+x/8]
	lit = ((b >> (x % 8)) & 1) != 0
	return
}

// Rows iterates over the framebuffer, one slice of pixels per row.
func (pr *Peripherals) Rows() iter.Seq2[int, []bool] {
	return func(yield func(int, []bool) bool) {
		fb := pr.Framebuffer()
		for y := range FRAMEBUFFER_HEIGHT {
			row := make([]bool, FRAMEBUFFER_WIDTH)
			for x := range row {
				row[x] = ((fb[y*FRAMEBUFFER_STRIDE+x/8] >> (x % 8)) & 1) != 0
			}
			if !yield(y, row) {
				return
			}
		}
	}
}

// Render draws the framebuffer as text, two rows per line using half
// block characters.
func (pr *Peripherals) Render() string {
	var text strings.Builder
	var upper []bool
	for y, row := range pr.Rows() {
		if y%2 == 0 {
			upper = row
			continue
		}
		for x, lower := range row {
			switch {
			case upper[x] && lower:
				text.WriteRune('█')
			case upper[x]:
				text.WriteRune('▀')
			case lower:
				text.WriteRune('▄')
			default:
				text.WriteRune(' ')
			}
		}
		text.WriteRune('\n')
	}
	return text.String()
}

func (pr *Peripherals) word(addr int) uint16 {
	return binary.LittleEndian.Uint16(pr.memory[addr:])
}

func (pr *Peripherals) setWord(addr int, value uint16) {
	binary.LittleEndian.PutUint16(pr.memory[addr:], value)
}

// Switches returns the switch word.
func (pr *Peripherals) Switches() uint16 {
	return pr.word(SWITCHES_ADDR)
}

// SetSwitches sets all switches.
func (pr *Peripherals) SetSwitches(value uint16) {
	pr.setWord(SWITCHES_ADDR, value)
}

// ToggleSwitch flips switch n, counting from the left.
func (pr *Peripherals) ToggleSwitch(n int) (err error) {
	if n < 0 || n >= SWITCH_COUNT {
		err = fmt.Errorf("%w: switch %d", ErrIndex, n)
		return
	}
	pr.SetSwitches(pr.Switches() ^ (1 << (SWITCH_COUNT - 1 - n)))
	return
}

// Buttons returns the button byte.
func (pr *Peripherals) Buttons() uint8 {
	return pr.memory[BUTTONS_ADDR]
}

// SetButtons sets the pressed buttons. Unknown bits are dropped.
func (pr *Peripherals) SetButtons(buttons uint8) {
	pr.memory[BUTTONS_ADDR] = buttons & BUTTON_MASK
}

// Leds returns the LED word.
func (pr *Peripherals) Leds() uint16 {
	return pr.word(LEDS_ADDR)
}

// Led returns the state of LED n, counting from the left.
func (pr *Peripherals) Led(n int) (on bool, err error) {
	if n < 0 || n >= LED_COUNT {
		err = fmt.Errorf("%w: led %d", ErrIndex, n)
		return
	}
	on = ((pr.Leds() >> (LED_COUNT - 1 - n)) & 1) != 0
	return
}

// LedString renders the LEDs left to right, grouped by four.
func (pr *Peripherals) LedString() string {
	return bitString(pr.Leds(), LED_COUNT, '*', '.')
}

// SwitchString renders the switches left to right, grouped by four.
func (pr *Peripherals) SwitchString() string {
	return bitString(pr.Switches(), SWITCH_COUNT, '1', '0')
}

func bitString(value uint16, count int, on rune, off rune) string {
	var text strings.Builder
	for n := range count {
		if n != 0 && n%4 == 0 {
			text.WriteRune(' ')
		}
		if ((value >> (count - 1 - n)) & 1) != 0 {
			text.WriteRune(on)
		} else {
			text.WriteRune(off)
		}
	}
	return text.String()
}

var _defines = [](struct {
	name  string
	value int
}){
	{"FRAMEBUFFER", FRAMEBUFFER_ADDR},
	{"FRAMEBUFFER_END", FRAMEBUFFER_ADDR + FRAMEBUFFER_SIZE},
	{"FRAMEBUFFER_STRIDE", FRAMEBUFFER_STRIDE},
	{"SWITCHES", SWITCHES_ADDR},
	{"BUTTONS", BUTTONS_ADDR},
	{"LEDS", LEDS_ADDR},
	{"BUTTON_CENTER", int(BUTTON_CENTER)},
	{"BUTTON_RIGHT", int(BUTTON_RIGHT)},
	{"BUTTON_LEFT", int(BUTTON_LEFT)},
	{"BUTTON_DOWN", int(BUTTON_DOWN)},
	{"BUTTON_UP", int(BUTTON_UP)},
}

// Defines returns an iterator over the assembler equates of the
// peripheral addresses.
func Defines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, def := range _defines {
			if !yield(def.name, fmt.Sprintf("%#x", def.value)) {
				return
			}
		}
	}
}

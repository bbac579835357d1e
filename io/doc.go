/*
Package io models the memory-mapped peripherals of the MSP430 board.

The devices live in the upper half of the 64KiB address space:

	0x8000 - 0x895F  framebuffer, 160x120 monochrome, 20 bytes per row
	0x8A00 - 0x8A01  switches, 16 bits, bit 15 is the leftmost switch
	0x8A02           buttons, 5 bits
	0x8A04 - 0x8A05  LEDs, 16 bits, bit 15 is the leftmost LED

Each framebuffer byte holds eight horizontal pixels, least significant
bit leftmost. A set bit is a lit pixel.

The views in this package read and write the memory image directly, so
a program sees switch and button changes on its next load, and the host
sees framebuffer and LED changes as soon as the store retires.
*/
package io

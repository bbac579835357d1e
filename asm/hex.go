package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteHex writes an image as one two-digit hex byte per line.
func WriteHex(w io.Writer, image []byte) (err error) {
	bw := bufio.NewWriter(w)
	for _, b := range image {
		_, err = fmt.Fprintf(bw, "%02X\n", b)
		if err != nil {
			return
		}
	}
	err = bw.Flush()
	return
}

// ReadHex reads an image written by WriteHex. Blank lines and `;`
// comments are ignored.
func ReadHex(r io.Reader) (image []byte, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		text, _, _ := strings.Cut(line, ";")
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}
		var value uint64
		value, err = strconv.ParseUint(text, 16, 8)
		if err != nil {
			err = &ErrSyntax{LineNo: lineNo, Line: line, Err: ErrHexSyntax}
			return
		}
		if len(image) >= IMAGE_LIMIT {
			err = &ErrSyntax{LineNo: lineNo, Line: line, Err: ErrImageSize}
			return
		}
		image = append(image, byte(value))
	}

	err = scanner.Err()
	return
}

package isa

// Status register flag bits.
const (
	SR_C = uint16(1 << 0) // carry
	SR_Z = uint16(1 << 1) // zero
	SR_N = uint16(1 << 2) // negative
	SR_V = uint16(1 << 8) // overflow
)

// StatusUpdate holds independently optional new values for the status
// flags. Only the flags named in Mask are changed by Apply.
type StatusUpdate struct {
	Mask  uint16
	Value uint16
}

// Set records a new value for flag.
func (su StatusUpdate) Set(flag uint16, on bool) StatusUpdate {
	su.Mask |= flag
	if on {
		su.Value |= flag
	} else {
		su.Value &^= flag
	}
	return su
}

// Has reports whether flag is updated, and its new value.
func (su StatusUpdate) Has(flag uint16) (on bool, ok bool) {
	ok = (su.Mask & flag) != 0
	on = (su.Value & flag) != 0
	return
}

// Apply returns sr with the updated flags.
func (su StatusUpdate) Apply(sr uint16) uint16 {
	return (sr &^ su.Mask) | (su.Value & su.Mask)
}

// String renders the updated flags as `CZNV`, `-` for unchanged.
func (su StatusUpdate) String() string {
	text := []byte("----")
	for n, flag := range []uint16{SR_C, SR_Z, SR_N, SR_V} {
		on, ok := su.Has(flag)
		if !ok {
			continue
		}
		if on {
			text[n] = "CZNV"[n]
		} else {
			text[n] = "cznv"[n]
		}
	}
	return string(text)
}

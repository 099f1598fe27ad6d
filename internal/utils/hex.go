package utils

const hexd = "0123456789ABCDEF"

// Hex4 formats a uint16 as four uppercase hex digits (e.g. a 16-bit UUID "FCD2").
func Hex4(v uint16) string {
	return string([]byte{
		hexd[(v>>12)&0xF],
		hexd[(v>>8)&0xF],
		hexd[(v>>4)&0xF],
		hexd[v&0xF],
	})
}

// BytesToHex converts a byte slice to an uppercase hexadecimal string without
// separators. It avoids fmt so it stays cheap on the firmware.
func BytesToHex(b []byte) string {
	out := make([]byte, 0, len(b)*2)
	for _, x := range b {
		out = append(out, hexd[x>>4], hexd[x&0x0F])
	}
	return string(out)
}

package scan

import "bytes"

// utf8BOM is the UTF-8 byte order mark some exporters prepend to files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a leading UTF-8 BOM from line if present. It is applied
// by the driver to the header line only, never to data lines.
func StripBOM(line []byte) []byte {
	if bytes.HasPrefix(line, utf8BOM) {
		return line[len(utf8BOM):]
	}
	return line
}

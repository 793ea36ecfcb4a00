package ipclog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Record is one log call on its way to the sinks. It is not retained.
type Record struct {
	Severity  Severity
	Timestamp int64 // milliseconds
	File      string
	Line      int
	Function  string
	Message   string

	// Dump, when non-nil, is rendered as hex rows after the message line.
	Dump []byte
	// Timestamped appends the record timestamp to the message.
	Timestamped bool
}

// Formatter renders records into sink-ready text.
type Formatter struct {
	// Timestamps appends the timestamp to every record, not only those
	// marked Timestamped.
	Timestamps bool
}

// renderPool reuses builders across Render calls on the hot path
var renderPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// Render produces "[TAG][file:line] message\n" followed by one line per
// hexRowWidth bytes of r.Dump and a final line for any remainder.
func (f *Formatter) Render(r Record) string {
	buf := renderPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer renderPool.Put(buf)

	prefix := renderPrefix(r.Severity, r.File, r.Line)

	buf.WriteString(prefix)
	msg := strings.TrimSuffix(r.Message, "\n")
	buf.WriteString(msg)
	if r.Timestamped || (f != nil && f.Timestamps) {
		if msg != emptyString {
			buf.WriteByte(' ')
		}
		buf.WriteString("timestamp[")
		buf.WriteString(strconv.FormatInt(r.Timestamp, 10))
		buf.WriteByte(']')
	}
	buf.WriteByte('\n')

	if len(r.Dump) > 0 {
		writeHexRows(buf, prefix, r.Dump)
	}

	return buf.String()
}

func renderPrefix(sev Severity, file string, line int) string {
	return "[" + sev.Tag() + "][" + file + ":" + strconv.Itoa(line) + "] "
}

const hexDigits = "0123456789ABCDEF"

func writeHexRows(buf *bytes.Buffer, prefix string, data []byte) {
	for off := 0; off < len(data); off += hexRowWidth {
		end := off + hexRowWidth
		if end > len(data) {
			end = len(data)
		}
		buf.WriteString(prefix)
		fmt.Fprintf(buf, "0x%04x:", off)
		for _, b := range data[off:end] {
			buf.WriteByte(' ')
			buf.WriteByte(hexDigits[b>>4])
			buf.WriteByte(hexDigits[b&0x0f])
		}
		buf.WriteByte('\n')
	}
}

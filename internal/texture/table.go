package texture

import (
	"bufio"
	"io"
)

// WriteTable writes an artifact produced by a WriteTo or WriteCSV style
// method to path. Nothing is left on disk when the writer fails.
func WriteTable(path string, write func(w io.Writer) error) error {
	return writeFile(path, func(w *bufio.Writer) error {
		return write(w)
	})
}

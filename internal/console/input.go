package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/literalura/internal/gutendex"
)

// LineReader yields one line of user input at a time, without the trailing
// newline. It returns io.EOF once input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

type scannerReader struct {
	scanner *bufio.Scanner
}

// NewLineReader reads lines from r.
func NewLineReader(r io.Reader) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r)}
}

func (s *scannerReader) ReadLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.scanner.Text(), "\r"), nil
}

// Prompt writes label and reads the reply.
func Prompt(in LineReader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	return in.ReadLine()
}

// IsYes reports whether answer is an affirmative reply. English and
// Portuguese forms are both accepted.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "sim":
		return true
	default:
		return false
	}
}

// ConfirmSave returns a confirm callback that shows the found book and asks
// whether to store it. Anything but an affirmative answer declines.
func ConfirmSave(in LineReader, out io.Writer) func(entry *gutendex.BookEntry) bool {
	return func(entry *gutendex.BookEntry) bool {
		renderEntry(out, entry)
		answer, err := Prompt(in, out, "\nSave this book to the catalog? (y/n): ")
		if err != nil {
			fmt.Fprintln(out)
			return false
		}
		return IsYes(answer)
	}
}

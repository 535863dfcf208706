package engine

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// detectLines bounds how far into the dump Detect looks. Dumps announce
// their origin in a header comment within the first few lines; scanning
// further risks matching table contents instead.
const detectLines = 50

// ErrNoMatch is returned when none of the supported engine keywords
// appears in the leading lines of the dump.
type ErrNoMatch struct {
	Path string
}

func (e *ErrNoMatch) Error() string {
	return fmt.Sprintf("could not detect a database engine from the first %d lines of %s; specify one explicitly with --base (%s)",
		detectLines, e.Path, strings.Join(Names(), ", "))
}

// Detect inspects the leading lines of the dump file for a case-insensitive
// engine keyword. When several keywords appear, mysql wins over mariadb,
// which wins over postgres.
func Detect(path string) (Engine, error) {
	f, err := os.Open(path)
	if err != nil {
		return Engine{}, fmt.Errorf("cannot read dump file: %w", err)
	}
	defer f.Close()

	var head []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for len(head) < detectLines && scanner.Scan() {
		head = append(head, strings.ToLower(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return Engine{}, fmt.Errorf("cannot read dump file: %w", err)
	}

	for _, e := range supported {
		for _, line := range head {
			if strings.Contains(line, e.Name) {
				return e, nil
			}
		}
	}
	return Engine{}, &ErrNoMatch{Path: path}
}

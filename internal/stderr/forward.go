package stderr

import (
	"bufio"
	"io"
	"strings"
)

// forward calls sink with every non-blank line read from r until EOF.
func forward(r io.Reader, sink func(line string)) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			sink(line)
		}
	}
}

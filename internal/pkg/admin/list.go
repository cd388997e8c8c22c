package admin

import (
	"fmt"
	"io"
	"strings"
)

// TextList prints every render as a full bulleted list.
type TextList struct {
	Out io.Writer
}

func (l *TextList) RenderList(lines []string) error {
	b := &strings.Builder{}

	for _, line := range lines {
		fmt.Fprintf(b, "• %s\n", line)
	}

	_, err := io.WriteString(l.Out, b.String())
	if err != nil {
		return fmt.Errorf("error writing reservation list %w", err)
	}

	return nil
}

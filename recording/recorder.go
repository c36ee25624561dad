package recording

import (
	"fmt"
	"io"
)

// Recording is an immutable list of recorded commands.
type Recording struct {
	commands []Command
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Len returns the number of commands.
func (r *Recording) Len() int { return len(r.commands) }

// Summary holds per-type command counts and draw totals.
type Summary struct {
	Counts   map[CommandType]int
	Vertices int // total vertices drawn
	Floats   int // total float32 values uploaded
}

// Summarize counts the commands by type.
func (r *Recording) Summarize() Summary {
	s := Summary{Counts: make(map[CommandType]int)}
	for _, cmd := range r.commands {
		s.Counts[cmd.Type()]++
		switch c := cmd.(type) {
		case DrawArraysCommand:
			s.Vertices += c.Count
		case BufferDataCommand:
			s.Floats += len(c.Data)
		}
	}
	return s
}

// WriteTo writes one line per command to w.
func (r *Recording) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, cmd := range r.commands {
		n, err := fmt.Fprintf(w, "%4d %s\n", i, cmd)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

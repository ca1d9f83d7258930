package rvm

import (
	"strconv"
	"strings"
)

// Counter identifies a flush statistic.
type Counter uint8

const (
	Commands Counter = iota
	ShaderSwitches
	TextureSwitches
	VertexBufferSwitches
	ModeSwitches
	DrawCalls
	Triangles
	Vertices
	Skipped

	TotalCounters
)

var counterNames = [TotalCounters]string{
	"commands", "shaderSwitches", "textureSwitches", "vertexBufferSwitches",
	"modeSwitches", "drawCalls", "triangles", "vertices", "skipped",
}

func (c Counter) String() string {
	if c < TotalCounters {
		return counterNames[c]
	}
	return "counter" + strconv.Itoa(int(c))
}

// Stats holds one value per Counter.
type Stats [TotalCounters]int

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	for i := range s {
		s[i] += o[i]
	}
}

func (s Stats) String() string {
	var b strings.Builder
	for i, v := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(counterNames[i])
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// attrs returns the counters as slog key/value pairs.
func (s Stats) attrs() []any {
	out := make([]any, 0, 2*len(s))
	for i, v := range s {
		out = append(out, counterNames[i], v)
	}
	return out
}

// Package glsl assembles the terrain and grass shader sources. The grass
// vertex stage reads its displacement constants from package wind, injected
// as #define lines, so the GPU and the CPU reference never drift apart.
package glsl

import (
	"embed"
	"fmt"
	"strconv"
	"strings"

	"grassfield/internal/wind"
)

//go:embed *.vert *.frag
var files embed.FS

// Define is one preprocessor constant.
type Define struct {
	Name  string
	Value string
}

// Float formats v as a GLSL float literal.
func Float(name string, v float64) Define {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return Define{Name: name, Value: s}
}

// Int formats v as a GLSL int literal.
func Int(name string, v int) Define {
	return Define{Name: name, Value: strconv.Itoa(v)}
}

// WindDefines returns the displacement constants of package wind plus the
// blade segment count.
func WindDefines(segments int) []Define {
	return []Define{
		Float("PRIMARY_FREQUENCY", wind.PrimaryFrequency),
		Float("PRIMARY_GAIN", wind.PrimaryGain),
		Float("SECONDARY_FREQUENCY", wind.SecondaryFrequency),
		Float("SECONDARY_DRIFT", wind.SecondaryDrift),
		Float("SECONDARY_GAIN", wind.SecondaryGain),
		Float("CROSS_SWAY", wind.CrossSway),
		Float("COMPRESSION", wind.Compression),
		Float("OPACITY_FLOOR", wind.OpacityFloor),
		Float("OPACITY_FLICKER", wind.OpacityFlicker),
		Int("SEGMENTS", max(segments, 2)),
	}
}

// Source returns the named shader file with defs inserted right after its
// #version line.
func Source(name string, defs ...Define) (string, error) {
	b, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read shader %s: %w", name, err)
	}
	return Inject(string(b), defs), nil
}

// Inject inserts defs after the first line of src when it is a #version
// directive, or at the top otherwise.
func Inject(src string, defs []Define) string {
	if len(defs) == 0 {
		return src
	}
	var sb strings.Builder
	head, rest := "", src
	if strings.HasPrefix(src, "#version") {
		if i := strings.IndexByte(src, '\n'); i >= 0 {
			head, rest = src[:i+1], src[i+1:]
		} else {
			head, rest = src+"\n", ""
		}
	}
	sb.WriteString(head)
	for _, d := range defs {
		fmt.Fprintf(&sb, "#define %s %s\n", d.Name, d.Value)
	}
	sb.WriteString(rest)
	return sb.String()
}

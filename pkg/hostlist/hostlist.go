// Package hostlist expands compressed node-range syntax, as written by
// SLURM-style schedulers, into explicit node name lists.
//
// A hostlist spec is a comma-separated list of items. Each item is either a
// bare node name, emitted verbatim, or a bracketed range with a shared
// prefix:
//
//	pool1-[2110-2111]  ->  pool1-2110, pool1-2111
//	hgx-isr1-[001-003] ->  hgx-isr1-001, hgx-isr1-002, hgx-isr1-003
//	gpu-[07]           ->  gpu-07
//
// Zero-padding is taken from the character width of the literal start token,
// so "001" pads to three digits while "1" does not pad at all. Items are
// emitted in left-to-right order, ranges in ascending numeric order; the
// expander never reorders comma groups.
package hostlist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrMalformedSpec reports a hostlist spec that cannot be expanded: a
// missing Nodes= token, a non-numeric range bound, or an inverted range.
var ErrMalformedSpec = errors.New("malformed hostlist spec")

// Expand extracts the spec following the first "Nodes=" token in fragment,
// delimited by whitespace or end of input, and expands it.
func Expand(fragment string) ([]string, error) {
	_, rest, found := strings.Cut(fragment, "Nodes=")
	if !found {
		return nil, fmt.Errorf("%w: no Nodes= token in %q", ErrMalformedSpec, fragment)
	}
	spec := rest
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		spec = rest[:i]
	}
	return ExpandSpec(spec)
}

// ExpandSpec expands a bare spec with no Nodes= prefix.
func ExpandSpec(spec string) ([]string, error) {
	if spec == "" {
		return nil, fmt.Errorf("%w: empty spec", ErrMalformedSpec)
	}

	expanded := make([]string, 0)
	for _, item := range strings.Split(spec, ",") {
		if strings.Contains(item, "[") && strings.Contains(item, "]") {
			nodes, err := expandItem(item)
			if err != nil {
				return nil, err
			}
			expanded = append(expanded, nodes...)
			continue
		}
		expanded = append(expanded, item)
	}
	return expanded, nil
}

// expandItem expands a single bracketed item, either prefix[start-end] or
// prefix[n].
func expandItem(item string) ([]string, error) {
	prefix, rest, _ := strings.Cut(item, "[")
	rangePart, _, _ := strings.Cut(rest, "]")

	startStr, endStr, isRange := strings.Cut(rangePart, "-")
	if !isRange {
		n, err := strconv.Atoi(rangePart)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric value %q in %q", ErrMalformedSpec, rangePart, item)
		}
		return []string{fmt.Sprintf("%s%0*d", prefix, len(rangePart), n)}, nil
	}

	start, err := strconv.Atoi(startStr)
	if err != nil {
		return nil, fmt.Errorf("%w: non-numeric range start %q in %q", ErrMalformedSpec, startStr, item)
	}
	end, err := strconv.Atoi(endStr)
	if err != nil {
		return nil, fmt.Errorf("%w: non-numeric range end %q in %q", ErrMalformedSpec, endStr, item)
	}
	if end < start {
		return nil, fmt.Errorf("%w: inverted range %q in %q", ErrMalformedSpec, rangePart, item)
	}

	// Pad to the width of the literal start token: "001" keeps three
	// digits, "7" keeps one.
	width := len(startStr)
	nodes := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		nodes = append(nodes, fmt.Sprintf("%s%0*d", prefix, width, n))
	}
	return nodes, nil
}

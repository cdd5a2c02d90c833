package timetree

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// restLabel marks the time of a region that none of its children account for.
const restLabel = "..."

// textNode is what the text report needs from a tree: *Entry commits its
// running interval on the way, a Report is already committed.
type textNode interface {
	commitSum() float64
	numChildren() int
	childAt(i int) (string, textNode)
}

// writeText writes the share line of n and, below it, one line per child and
// the rest line. A nil parentTotal marks the root, whose own sum is both the
// parent and the grand total. It returns the committed sum of n.
func writeText(b *strings.Builder, n textNode, indent string, parentTotal, grandTotal *float64) float64 {
	sum := n.commitSum()

	parent, total := sum, sum
	if parentTotal != nil {
		parent, total = *parentTotal, *parentTotal
		if grandTotal != nil {
			total = *grandTotal
		}
	}

	writeShare(b, sum, parent, total)

	count := n.numChildren()
	if count == 0 {
		return sum
	}

	width := 0
	for i := 0; i < count; i++ {
		name, _ := n.childAt(i)
		if l := utf8.RuneCountInString(name); l > width {
			width = l
		}
	}

	childIndent := indent + "  "
	childSum := 0.0
	for i := 0; i < count; i++ {
		name, child := n.childAt(i)
		b.WriteString(indent)
		b.WriteString(name)
		b.WriteString(":")
		b.WriteString(padding(width - utf8.RuneCountInString(name)))
		b.WriteString(" ")

		childSum += writeText(b, child, childIndent, &sum, &total)
	}

	rest := sum - childSum
	if rest < 0 {
		rest = 0
	}

	b.WriteString(indent)
	b.WriteString(restLabel)
	b.WriteString(":")
	b.WriteString(padding(width - len(restLabel)))
	b.WriteString(" ")
	writeShare(b, rest, sum, total)
	return sum
}

func writeShare(b *strings.Builder, sum, parent, total float64) {
	fmt.Fprintf(b, "%2.1f%% (%2.1f%%)\n", percent(sum, parent), percent(sum, total))
}

// percent returns 100·part/whole, or 0 when whole is 0.
func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}

	return part * 100 / whole
}

func padding(n int) string {
	if n <= 0 {
		return ""
	}

	return strings.Repeat(" ", n)
}

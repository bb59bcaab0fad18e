package perm

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT digraph of the plan tree for n elements down
// to level l.
//
// Dropping the last swap of any plan yields a valid plan one level up, so
// the plans of levels 0..l form a tree rooted at the identity. Each node
// shows the sequence its plan produces; each edge is labeled with the swap
// appended at that step. Sibling order matches [Generate].
//
// The labels parameter names the sequence elements: if labels[i] exists,
// element i is shown as labels[i], otherwise as its numeric index. Pass nil
// for numeric labels. The labels slice is not modified.
//
// The tree holds every plan of every level through l, so its node count is
// [TreeSize](n, l) and grows factorially. Bound n or check TreeSize before
// rendering large trees.
//
// ToDOT returns ErrInvalidDimension when n < 1, l < 0, or l >= n.
func ToDOT(n, l int, labels []string) (string, error) {
	if err := checkDimensions(n, l); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph PlanTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, shape=box, style=\"filled,rounded\", fillcolor=white];\n")
	buf.WriteString("  edge [fontname=\"SF Mono, Menlo, monospace\", fontsize=11];\n\n")

	w := &dotWriter{buf: &buf, n: n, l: l, seq: seqLabels(n, labels)}
	fmt.Fprintf(&buf, "  n0 [label=%q];\n", strings.Join(w.seq, " "))
	w.descend(0, 0, 0)

	buf.WriteString("}\n")
	return buf.String(), nil
}

// TreeSize returns the number of nodes in the plan tree for n elements down
// to level l: the sum of [Plans](n, k) for k in 0..l. For l = n-1 this
// equals Factorial(n).
func TreeSize(n, l int) int {
	total := 0
	for k := 0; k <= l; k++ {
		total += Plans(n, k)
	}
	return total
}

type dotWriter struct {
	buf  *bytes.Buffer
	n, l int
	seq  []string
	next int
}

// descend writes the subtree of all plans extending the current prefix.
// The element sequence is swapped in place and swapped back after each
// branch, so the node label is always the prefix's own result.
func (w *dotWriter) descend(x, floor, parent int) {
	if x == w.l {
		return
	}

	for i := floor; i <= w.n-2; i++ {
		for j := i + 1; j < w.n; j++ {
			w.seq[i], w.seq[j] = w.seq[j], w.seq[i]

			w.next++
			id := w.next
			fmt.Fprintf(w.buf, "  n%d [label=%q];\n", id, strings.Join(w.seq, " "))
			fmt.Fprintf(w.buf, "  n%d -> n%d [label=%q];\n", parent, id, Pair{First: i, Second: j})
			w.descend(x+1, i+1, id)

			w.seq[i], w.seq[j] = w.seq[j], w.seq[i]
		}
	}
}

// seqLabels builds the displayed element sequence, falling back to numeric
// indices where labels run out.
func seqLabels(n int, labels []string) []string {
	seq := make([]string, n)
	for i := range seq {
		if i < len(labels) {
			seq[i] = labels[i]
		} else {
			seq[i] = strconv.Itoa(i)
		}
	}
	return seq
}

// RenderSVG renders the plan tree for n elements down to level l as an SVG
// image using Graphviz. The labels parameter works as in [ToDOT].
func RenderSVG(n, l int, labels []string) ([]byte, error) {
	dot, err := ToDOT(n, l, labels)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package bdd

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"
)

// Stats returns information about the BDD: size of the node table, number of
// nodes produced and garbage collections.
func (b *BDD) Stats() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Varnum:     %d\n", b.varnum)
	fmt.Fprintf(&sb, "Allocated:  %d\n", len(b.nodes))
	fmt.Fprintf(&sb, "Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	fmt.Fprintf(&sb, "Free:       %d  (%.3g %%)\n", b.freenum, r)
	fmt.Fprintf(&sb, "Used:       %d  (%.3g %%)\n", len(b.nodes)-b.freenum, (100.0 - r))
	freed := 0
	for _, g := range b.history {
		freed += g.freed
	}
	fmt.Fprintf(&sb, "# of GC:    %d\n", len(b.history))
	fmt.Fprintf(&sb, "Reclaimed:  %d", freed)
	return sb.String()
}

// ******************************************************************************************************

// String returns a one-line description of node n.
func (b *BDD) String(n Node) string {
	switch {
	case n == False:
		return "False"
	case n == True:
		return "True"
	case n < 0:
		return "Error"
	case int(n) >= len(b.nodes):
		return fmt.Sprintf("Error (%d not a valid index)", n)
	case b.isfree(n):
		return fmt.Sprintf("Error (node %d undefined)", n)
	}
	return fmt.Sprintf("(%d[%d] ? %d : %d)", n, b.level(n), b.low(n), b.high(n))
}

// reachable returns the nodes reachable from the roots ns, sorted by index.
// Constants are not included.
func (b *BDD) reachable(ns ...Node) []Node {
	res := []Node{}
	for _, n := range ns {
		if n >= 2 && !b.ismarked(n) {
			b.marknode(n)
			res = append(res, n)
		}
	}
	for k := 0; k < len(res); k++ {
		for _, s := range [2]Node{b.low(res[k]), b.high(res[k])} {
			if s >= 2 && !b.ismarked(s) {
				b.marknode(s)
				res = append(res, s)
			}
		}
	}
	for _, n := range res {
		b.unmarknode(n)
	}
	slices.Sort(res)
	return res
}

// live returns all the nodes in the table that are not free.
func (b *BDD) live() []Node {
	res := []Node{}
	for k := 2; k < len(b.nodes); k++ {
		if !b.isfree(Node(k)) {
			res = append(res, Node(k))
		}
	}
	return res
}

// PrintTree outputs a textual representation of the BDD with root n, with one
// line for each node.
func (b *BDD) PrintTree(w io.Writer, n Node) error {
	b.checkptr(n)
	switch n {
	case False:
		_, err := fmt.Fprintln(w, "False")
		return err
	case True:
		_, err := fmt.Fprintln(w, "True")
		return err
	}
	if _, err := fmt.Fprintf(w, "node: %d\n", n); err != nil {
		return err
	}
	return b.printTable(w, b.reachable(n))
}

// PrintAll outputs all the live nodes of the BDD.
func (b *BDD) PrintAll(w io.Writer) error {
	return b.printTable(w, b.live())
}

func (b *BDD) printTable(w io.Writer, nodes []Node) error {
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	for _, n := range nodes {
		fmt.Fprintf(tw, "%d\t[%d\t] ? \t%d\t : %d\n", n, b.level(n), b.low(n), b.high(n))
	}
	return tw.Flush()
}

// logTable dumps the node table in the debug log.
func (b *BDD) logTable() {
	if ce := b.log.Check(zap.DebugLevel, "node table"); ce != nil {
		var sb strings.Builder
		_ = b.PrintAll(&sb)
		ce.Write(zap.String("nodes", sb.String()))
	}
}

// Allnodes applies f to every node reachable from the roots in n, or to all the
// live nodes when n is empty. The constants False and True are always visited
// first, followed by the other nodes in increasing order. Constants have level
// Varnum and are their own successors. We stop at the first error returned by
// f. The function f must not create new nodes.
func (b *BDD) Allnodes(f func(id Node, level int, low, high Node) error, n ...Node) error {
	for _, v := range n {
		b.checkptr(v)
	}
	nodes := []Node{False, True}
	if len(n) == 0 {
		nodes = append(nodes, b.live()...)
	} else {
		nodes = append(nodes, b.reachable(n...)...)
	}
	for _, v := range nodes {
		if err := f(v, int(b.level(v)), b.low(v), b.high(v)); err != nil {
			return err
		}
	}
	return nil
}

// ******************************************************************************************************

// PrintAut prints a graph-like description of the BDD with root n using the
// AUT format. States 0 and 1 are the constants, the other nodes are numbered
// from 2 in increasing order of their index.
func (b *BDD) PrintAut(w io.Writer, n Node) error {
	b.checkptr(n)
	return b.printAut(w, b.reachable(n))
}

// PrintAllAut prints all the live nodes of the BDD using the AUT format.
func (b *BDD) PrintAllAut(w io.Writer) error {
	return b.printAut(w, b.live())
}

func (b *BDD) printAut(w io.Writer, nodes []Node) error {
	states := make(map[Node]int, len(nodes)+2)
	states[False] = 0
	states[True] = 1
	for k, v := range nodes {
		states[v] = k + 2
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "des(0,%d,%d)\n", 3*len(nodes)+2, len(nodes)+2)
	fmt.Fprintln(bw, "(0, \"S.`False`\", 0)")
	fmt.Fprintln(bw, "(1, \"S.`True`\", 1)")
	for _, v := range nodes {
		s := states[v]
		fmt.Fprintf(bw, "(%d, \"S.`%d`\", %[1]d)\n", s, b.level(v))
		fmt.Fprintf(bw, "(%d, \"E.`0`\", %d)\n", s, states[b.low(v)])
		fmt.Fprintf(bw, "(%d, \"E.`1`\", %d)\n", s, states[b.high(v)])
	}
	return bw.Flush()
}

// ******************************************************************************************************

// PrintDot prints a graph-like description of the BDD with root n using the DOT
// format. We do not draw arcs that go to the constant false.
func (b *BDD) PrintDot(w io.Writer, n Node) error {
	b.checkptr(n)
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "1 [shape=box, label=\"1\", style=filled, shape=box, height=0.3, width=0.3];")
	for _, v := range b.reachable(n) {
		fmt.Fprintf(bw, "%d %s\n", v, dotlabel(v, b.level(v)))
		if low := b.low(v); low != False {
			fmt.Fprintf(bw, "%d -> %d [style=dotted];\n", v, low)
		}
		if high := b.high(v); high != False {
			fmt.Fprintf(bw, "%d -> %d [style=filled];\n", v, high)
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotlabel(a Node, b int32) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, b, a)
}

// Package gprint pretty-prints PREC2 relation tables and final Level tables
// for debugging, mirroring the original SMIE test harness's grammar dumps
// (original_source/smie-test.c) and the teacher's own LL1Table.String() /
// SLR table dumps (tunascript/grammar.go, internal/ictiobus/parse/slr.go).
package gprint

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/smie/internal/level"
	"github.com/dekarrin/smie/internal/prec2"
)

const tableWidth = 100

// DumpPrec2 renders every recorded PREC2 relation as a bordered table of
// (left, relation, right) rows, sorted for determinism.
func DumpPrec2(g *prec2.Grammar) string {
	triples := g.Relations()
	sort.Slice(triples, func(i, j int) bool {
		if triples[i].Left.Name() != triples[j].Left.Name() {
			return triples[i].Left.Name() < triples[j].Left.Name()
		}
		return triples[i].Right.Name() < triples[j].Right.Name()
	})

	data := [][]string{{"left", "relation", "right"}}
	for _, t := range triples {
		data = append(data, []string{t.Left.Name(), t.Rel.String(), t.Right.Name()})
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, tableWidth, rosed.Options{TableBorders: true}).
		String()
}

// DumpLevels renders every terminal's compiled Level (left/right precedence
// and bracket class) as a bordered table, sorted by terminal name.
func DumpLevels(g *level.Grammar) string {
	terms := g.Terminals()
	sort.Slice(terms, func(i, j int) bool { return terms[i].Name() < terms[j].Name() })

	data := [][]string{{"terminal", "left", "right", "class"}}
	for _, t := range terms {
		lvl, _ := g.Level(t)
		data = append(data, []string{
			t.Name(),
			fmt.Sprintf("%d", lvl.LeftPrec),
			fmt.Sprintf("%d", lvl.RightPrec),
			lvl.Class.String(),
		})
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, tableWidth, rosed.Options{TableBorders: true}).
		String()
}

package level

import (
	"encoding/binary"
	"fmt"

	"github.com/dekarrin/smie/internal/prec2"
	"github.com/dekarrin/smie/internal/symbol"
)

// NewForDecode returns an empty Grammar bound to pool, ready to receive
// UnmarshalBinary. Package gcache uses this to reconstitute a cached Grammar
// against the caller's live symbol pool, since a Symbol's identity is only
// meaningful relative to the Pool it was interned from.
func NewForDecode(pool *symbol.Pool) *Grammar {
	return newGrammar(pool)
}

// MarshalBinary encodes the Level table, pair set, closer-ends, and BuildID,
// in the fixed-width-length-prefixed style of the teacher's
// tunascript/binary.go helpers (encBinaryString/encBinaryInt), reimplemented
// here since Symbol's pool-bound identity means nothing generic can
// reflect over it.
func (g *Grammar) MarshalBinary() ([]byte, error) {
	var out []byte
	out = append(out, g.BuildID[:]...)

	terms := g.Terminals()
	out = append(out, encInt(len(terms))...)
	for _, t := range terms {
		out = append(out, encSymbol(t)...)
		lvl := g.levels[t]
		out = append(out, encInt(lvl.LeftPrec)...)
		out = append(out, encInt(lvl.RightPrec)...)
		out = append(out, encInt(int(lvl.Class))...)
	}

	out = append(out, encInt(len(g.pairs))...)
	for opener, closer := range g.pairs {
		out = append(out, encSymbol(opener)...)
		out = append(out, encSymbol(closer)...)
	}

	out = append(out, encInt(len(g.closerEnds))...)
	for s := range g.closerEnds {
		out = append(out, encSymbol(s)...)
	}

	return out, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary into g, interning
// every symbol against g's own pool (set via NewForDecode).
func (g *Grammar) UnmarshalBinary(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("level: unexpected end of data reading build id")
	}
	copy(g.BuildID[:], data[:16])
	data = data[16:]

	termCount, n, err := decInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	for i := 0; i < termCount; i++ {
		sym, n, err := decSymbol(g.pool, data)
		if err != nil {
			return err
		}
		data = data[n:]

		left, n, err := decInt(data)
		if err != nil {
			return err
		}
		data = data[n:]

		right, n, err := decInt(data)
		if err != nil {
			return err
		}
		data = data[n:]

		class, n, err := decInt(data)
		if err != nil {
			return err
		}
		data = data[n:]

		g.levels[sym] = Level{LeftPrec: left, RightPrec: right, Class: prec2.Class(class)}
	}

	pairCount, n, err := decInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	for i := 0; i < pairCount; i++ {
		opener, n, err := decSymbol(g.pool, data)
		if err != nil {
			return err
		}
		data = data[n:]

		closer, n, err := decSymbol(g.pool, data)
		if err != nil {
			return err
		}
		data = data[n:]

		g.pairs[opener] = closer
	}

	closerEndCount, n, err := decInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	for i := 0; i < closerEndCount; i++ {
		sym, n, err := decSymbol(g.pool, data)
		if err != nil {
			return err
		}
		data = data[n:]

		g.closerEnds[sym] = struct{}{}
	}

	return nil
}

func encSymbol(s symbol.Symbol) []byte {
	out := encString(s.Name())
	out = append(out, encInt(int(s.Kind()))...)
	return out
}

func decSymbol(pool *symbol.Pool, data []byte) (symbol.Symbol, int, error) {
	name, n1, err := decString(data)
	if err != nil {
		return symbol.Symbol{}, 0, err
	}
	data = data[n1:]

	kind, n2, err := decInt(data)
	if err != nil {
		return symbol.Symbol{}, 0, err
	}

	return pool.Intern(name, symbol.Kind(kind)), n1 + n2, nil
}

func encString(s string) []byte {
	out := encInt(len(s))
	return append(out, s...)
}

func decString(data []byte) (string, int, error) {
	n, read, err := decInt(data)
	if err != nil {
		return "", 0, err
	}
	data = data[read:]
	if len(data) < n {
		return "", 0, fmt.Errorf("level: unexpected end of data reading string body")
	}
	return string(data[:n]), read + n, nil
}

func encInt(i int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(int64(i)))
	return b
}

func decInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("level: unexpected end of data reading int")
	}
	return int(int64(binary.BigEndian.Uint64(data))), 8, nil
}

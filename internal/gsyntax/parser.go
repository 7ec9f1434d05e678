package gsyntax

import (
	"fmt"

	"github.com/dekarrin/smie/internal/bnf"
	"github.com/dekarrin/smie/internal/precs"
	"github.com/dekarrin/smie/internal/smerr"
	"github.com/dekarrin/smie/internal/symbol"
)

// LoadFromText parses src (spec §6's ABNF grammar format) and adds every
// rule it contains to g, returning the precedence resolvers declared by any
// "%precs" blocks. A malformed source text is reported as a GrammarError,
// never a panic - this is the boundary spec.md's bnf.AddRule explicitly
// defers to: well-formed symbol sequences only ever reach AddRule from here.
func LoadFromText(g *bnf.Grammar, src string) (precs.Resolvers, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, smerr.WrapGrammarf(err, "grammar syntax error: %s", err)
	}

	p := &parser{toks: toks, pool: g.Pool()}

	if err := p.parseRules(g); err != nil {
		return nil, err
	}

	var resolvers precs.Resolvers
	for p.peek().kind == tPrecsKeyword {
		if err := p.parsePrecsBlock(&resolvers); err != nil {
			return nil, err
		}
	}

	if p.peek().kind != tEOF {
		return nil, p.errorf("unexpected %s after grammar", p.peek().kind)
	}

	return resolvers, nil
}

type parser struct {
	toks []token
	pos  int
	pool *symbol.Pool
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k tokenKind) (token, error) {
	t := p.peek()
	if t.kind != k {
		return token{}, p.errorf("expected %s, found %s", k, t.kind)
	}
	return p.next(), nil
}

func (p *parser) errorf(format string, a ...interface{}) error {
	t := p.peek()
	return smerr.Grammarf("grammar syntax error at line %d, col %d: "+format, append([]interface{}{t.line, t.col}, a...)...)
}

// parseRules consumes `*rule`, per spec §6: `rule = nonterminal ":" sentences ";"`.
func (p *parser) parseRules(g *bnf.Grammar) error {
	for p.peek().kind == tNonterminal {
		lhsTok := p.next()
		lhs := p.pool.Intern(lhsTok.text, symbol.NonTerminal)

		if _, err := p.expect(tColon); err != nil {
			return err
		}

		alternatives, err := p.parseSentences()
		if err != nil {
			return err
		}

		if _, err := p.expect(tSemicolon); err != nil {
			return err
		}

		for _, alt := range alternatives {
			if len(alt) == 0 {
				return smerr.Grammarf("rule %q has an empty alternative; every production must have at least one symbol", lhsTok.text)
			}
			for i := 0; i+1 < len(alt); i++ {
				if alt[i].IsNonTerminal() && alt[i+1].IsNonTerminal() {
					return smerr.Grammarf("rule %q has adjacent nonterminals %q %q; a terminal must separate them", lhsTok.text, alt[i].Name(), alt[i+1].Name())
				}
			}
			symbols := make([]symbol.Symbol, 0, len(alt)+1)
			symbols = append(symbols, lhs)
			symbols = append(symbols, alt...)
			g.AddRule(symbols)
		}
	}
	return nil
}

// parseSentences consumes `sentences = symbols *("|" symbols)`.
func (p *parser) parseSentences() ([][]symbol.Symbol, error) {
	var alts [][]symbol.Symbol

	first, err := p.parseSymbols()
	if err != nil {
		return nil, err
	}
	alts = append(alts, first)

	for p.peek().kind == tPipe {
		p.next()
		alt, err := p.parseSymbols()
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
	}

	return alts, nil
}

// parseSymbols consumes `symbols = *symbol` - every NONTERMINAL, TERMINAL, or
// TERMINALVAR token up to (but not including) the next "|" or ";".
func (p *parser) parseSymbols() ([]symbol.Symbol, error) {
	var out []symbol.Symbol
	for {
		t := p.peek()
		switch t.kind {
		case tNonterminal:
			out = append(out, p.pool.Intern(t.text, symbol.NonTerminal))
			p.next()
		case tTerminal:
			out = append(out, p.pool.Intern(t.text, symbol.Terminal))
			p.next()
		case tTerminalVar:
			out = append(out, p.pool.Intern(t.text, symbol.TerminalVariable))
			p.next()
		default:
			return out, nil
		}
	}
}

// parsePrecsBlock consumes one `resolver = "%precs" "{" *prec "}"`.
func (p *parser) parsePrecsBlock(out *precs.Resolvers) error {
	if _, err := p.expect(tPrecsKeyword); err != nil {
		return err
	}
	if _, err := p.expect(tLBrace); err != nil {
		return err
	}

	for p.peek().kind == tNonterminal {
		kind, err := precsKind(p.peek().text)
		if err != nil {
			return p.errorf("%s", err)
		}
		p.next()

		var ops []symbol.Symbol
		for p.peek().kind == tTerminal {
			ops = append(ops, p.pool.Intern(p.peek().text, symbol.Terminal))
			p.next()
		}
		if len(ops) == 0 {
			return p.errorf("%%precs line needs at least one terminal")
		}

		if _, err := p.expect(tSemicolon); err != nil {
			return err
		}

		out.Add(kind, ops)
	}

	if _, err := p.expect(tRBrace); err != nil {
		return err
	}
	return nil
}

func precsKind(word string) (precs.Kind, error) {
	switch word {
	case "left":
		return precs.Left, nil
	case "right":
		return precs.Right, nil
	case "assoc":
		return precs.Assoc, nil
	case "nonassoc":
		return precs.NonAssoc, nil
	default:
		return 0, fmt.Errorf("expected one of left/right/assoc/nonassoc, found %q", word)
	}
}

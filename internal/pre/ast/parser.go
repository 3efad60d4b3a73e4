package ast

import (
	"github.com/dekarrin/pregex/internal/pre/lex"
	"github.com/dekarrin/pregex/internal/preerrors"
)

// Parse tokenizes and parses src into an expression tree per the PRE
// grammar. An empty PRE, an unknown token, or an unterminated bracket all
// surface as a ParseError.
func Parse(src string) (*Node, error) {
	toks, err := lex.Tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	tree, err := p.parseUnion()
	if err != nil {
		return nil, err
	}

	if p.peek().Type != lex.TokEOF {
		return nil, preerrors.Parse(p.peek().Pos, p.peek().Value)
	}

	return tree, nil
}

type parser struct {
	toks []lex.Token
	pos  int
}

func (p *parser) peek() lex.Token {
	return p.toks[p.pos]
}

func (p *parser) advance() lex.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// parseUnion implements: union := shuffle ('|' shuffle)*
func (p *parser) parseUnion() (*Node, error) {
	left, err := p.parseShuffle()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == lex.TokUnion {
		p.advance()
		right, err := p.parseShuffle()
		if err != nil {
			return nil, err
		}
		left = Union(left, right)
	}

	return left, nil
}

// parseShuffle implements: shuffle := concat ('&' concat)*
func (p *parser) parseShuffle() (*Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == lex.TokShuffle {
		p.advance()
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = Shuffle(left, right)
	}

	return left, nil
}

// parseConcat implements: concat := star+
func (p *parser) parseConcat() (*Node, error) {
	left, err := p.parseStar()
	if err != nil {
		return nil, err
	}

	for p.startsAtom() {
		right, err := p.parseStar()
		if err != nil {
			return nil, err
		}
		left = Concat(left, right)
	}

	return left, nil
}

func (p *parser) startsAtom() bool {
	switch p.peek().Type {
	case lex.TokSymbol, lex.TokLParen:
		return true
	default:
		return false
	}
}

// parseStar implements: star := atom ('*')?
func (p *parser) parseStar() (*Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	if p.peek().Type == lex.TokStar {
		p.advance()
		return Star(atom), nil
	}

	return atom, nil
}

// parseAtom implements: atom := SYMBOL | '[' IDENT ']' | '(' expr ')'
//
// Bracketed identifiers are already collapsed into a single TokSymbol token
// by the lexer, so both SYMBOL forms are handled the same way here.
func (p *parser) parseAtom() (*Node, error) {
	tok := p.peek()

	switch tok.Type {
	case lex.TokSymbol:
		p.advance()
		return Sym(tok.Value), nil

	case lex.TokLParen:
		p.advance()
		inner, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if p.peek().Type != lex.TokRParen {
			return nil, preerrors.Parsef(p.peek().Pos, p.peek().Value, "expected ')'")
		}
		p.advance()
		return inner, nil

	default:
		return nil, preerrors.Parse(tok.Pos, describeToken(tok))
	}
}

func describeToken(t lex.Token) string {
	if t.Type == lex.TokEOF {
		return "end of input"
	}
	return t.Value
}

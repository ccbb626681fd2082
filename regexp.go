package powerset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrRegExpSyntax is wrapped by every error ParseRegExp returns.
var ErrRegExpSyntax = errors.New("regexp syntax error")

type Kind int

const (
	REGEXP_UNION         = Kind(iota) // The union of two expressions
	REGEXP_CONCATENATION              // A sequence of two expressions
	REGEXP_OPTIONAL                   // An optional expression
	REGEXP_REPEAT                     // An expression that repeats
	REGEXP_REPEAT_MIN                 // An expression that repeats a minimum number of times
	REGEXP_REPEAT_MINMAX              // An expression that repeats a minimum and maximum number of times
	REGEXP_CHAR                       // A Character
	REGEXP_CHAR_RANGE                 // A Character range
	REGEXP_EMPTY                      // An empty expression
	REGEXP_STRING                     // A string expression
)

// Syntax flags.
const (
	EMPTY = 0x0001 // '#' denotes the empty language
	ALL   = 0x00ff
	NONE  = 0x0000

	ASCII_CASE_INSENSITIVE = 0x0100 // letters match both cases
)

// maxCharRange bounds the number of symbols a single [a-z] range may expand to.
const maxCharRange = 1024

// maxRepeat bounds the counts of a {n,m} repetition.
const maxRepeat = 1000

// RegExp is a parsed regular expression over single-character symbols. The syntax is:
//
//	regexp    ::= unionexp
//	unionexp  ::= concatexp '|' unionexp | concatexp
//	concatexp ::= repeatexp concatexp | repeatexp
//	repeatexp ::= repeatexp ('?' | '*' | '+' | '{n}' | '{n,}' | '{n,m}') | charclassexp
//	charclassexp ::= '[' charclass+ ']' | simpleexp
//	charclass ::= charexp '-' charexp | charexp
//	simpleexp ::= charexp | '#' | '"' <chars> '"' | '(' ')' | '(' unionexp ')'
//	charexp   ::= <char> | '\' <char>
//
// Repeat counts are limited to 1000. Every character becomes a Symbol of its own. The alphabet is exactly the set of characters
// named in the expression, so there is no any-character wildcard.
type RegExp struct {
	kind       Kind
	exp1, exp2 *RegExp
	s          string
	c          rune
	min, max   int
	from, to   rune
	flags      int
}

type regExpOption struct {
	syntaxFlags int
	matchFlags  int
}

type RegExpOption func(*regExpOption)

// WithSyntaxFlags selects the optional operators ParseRegExp recognizes.
func WithSyntaxFlags(flags int) RegExpOption {
	return func(o *regExpOption) {
		o.syntaxFlags = flags
	}
}

// WithCaseInsensitive makes ASCII letters match both their lower and upper case symbol.
func WithCaseInsensitive() RegExpOption {
	return func(o *regExpOption) {
		o.matchFlags |= ASCII_CASE_INSENSITIVE
	}
}

// ParseRegExp parses s. The empty expression denotes the empty string.
func ParseRegExp(s string, options ...RegExpOption) (*RegExp, error) {
	opts := &regExpOption{syntaxFlags: ALL}
	for _, fn := range options {
		fn(opts)
	}
	if opts.syntaxFlags > ALL {
		return nil, errors.New("illegal syntax flag")
	}

	p := &regExpParser{src: []rune(s), flags: opts.syntaxFlags | opts.matchFlags}
	if len(p.src) == 0 {
		return makeString(p.flags, ""), nil
	}
	e, err := p.parseUnionExp()
	if err != nil {
		return nil, err
	}
	if p.more() {
		return nil, p.errorf("end-of-string expected")
	}
	return e, nil
}

func newContainerNode(flags int, kind Kind, exp1, exp2 *RegExp) *RegExp {
	return &RegExp{flags: flags, kind: kind, exp1: exp1, exp2: exp2}
}

func newRepeatingNode(flags int, kind Kind, exp *RegExp, min, max int) *RegExp {
	return &RegExp{flags: flags, kind: kind, exp1: exp, min: min, max: max}
}

func makeUnion(flags int, exp1, exp2 *RegExp) *RegExp {
	return newContainerNode(flags, REGEXP_UNION, exp1, exp2)
}

func isStringLike(e *RegExp) bool {
	return e.kind == REGEXP_CHAR || e.kind == REGEXP_STRING
}

// makeConcatenation folds adjacent characters and strings into a single string node.
func makeConcatenation(flags int, exp1, exp2 *RegExp) *RegExp {
	if isStringLike(exp1) && isStringLike(exp2) {
		return makeStringRegExp(flags, exp1, exp2)
	}

	rexp1, rexp2 := exp1, exp2
	if exp1.kind == REGEXP_CONCATENATION && isStringLike(exp1.exp2) && isStringLike(exp2) {
		rexp1 = exp1.exp1
		rexp2 = makeStringRegExp(flags, exp1.exp2, exp2)
	} else if isStringLike(exp1) && exp2.kind == REGEXP_CONCATENATION && isStringLike(exp2.exp1) {
		rexp1 = makeStringRegExp(flags, exp1, exp2.exp1)
		rexp2 = exp2.exp2
	}
	return newContainerNode(flags, REGEXP_CONCATENATION, rexp1, rexp2)
}

func (r *RegExp) text() string {
	if r.kind == REGEXP_STRING {
		return r.s
	}
	return string(r.c)
}

func makeStringRegExp(flags int, exp1, exp2 *RegExp) *RegExp {
	return makeString(flags, exp1.text()+exp2.text())
}

func makeOptional(flags int, exp *RegExp) *RegExp {
	return newContainerNode(flags, REGEXP_OPTIONAL, exp, nil)
}

func makeRepeat(flags int, exp *RegExp) *RegExp {
	return newContainerNode(flags, REGEXP_REPEAT, exp, nil)
}

func makeRepeatMin(flags int, exp *RegExp, min int) *RegExp {
	return newRepeatingNode(flags, REGEXP_REPEAT_MIN, exp, min, 0)
}

func makeRepeatRange(flags int, exp *RegExp, min, max int) *RegExp {
	return newRepeatingNode(flags, REGEXP_REPEAT_MINMAX, exp, min, max)
}

func makeChar(flags int, c rune) *RegExp {
	return &RegExp{flags: flags, kind: REGEXP_CHAR, c: c}
}

func makeCharRange(flags int, from, to rune) *RegExp {
	return &RegExp{flags: flags, kind: REGEXP_CHAR_RANGE, from: from, to: to}
}

func makeEmpty(flags int) *RegExp {
	return newContainerNode(flags, REGEXP_EMPTY, nil, nil)
}

func makeString(flags int, s string) *RegExp {
	return &RegExp{flags: flags, kind: REGEXP_STRING, s: s}
}

// ToNFA builds an NFA accepting the language of r. Returns ErrTooComplex if the NFA would have
// more than maxStates states; maxStates <= 0 means no limit.
func (r *RegExp) ToNFA(maxStates int) (*NFA, error) {
	a, err := r.toNFA(maxStates)
	if err != nil {
		return nil, err
	}
	if err := checkStates(a.GetNumStates(), maxStates); err != nil {
		return nil, err
	}
	return a, nil
}

func checkStates(n, maxStates int) error {
	if maxStates > 0 && n > maxStates {
		return fmt.Errorf("regexp needs %d states, limit is %d: %w", n, maxStates, ErrTooComplex)
	}
	return nil
}

func (r *RegExp) toNFA(maxStates int) (*NFA, error) {
	switch r.kind {
	case REGEXP_UNION, REGEXP_CONCATENATION:
		list := make([]*NFA, 0)
		if err := r.findLeaves(r.exp1, r.kind, &list, maxStates); err != nil {
			return nil, err
		}
		if err := r.findLeaves(r.exp2, r.kind, &list, maxStates); err != nil {
			return nil, err
		}
		if r.kind == REGEXP_UNION {
			return Union(list...), nil
		}
		return Concatenate(list...), nil
	case REGEXP_OPTIONAL, REGEXP_REPEAT:
		a, err := r.exp1.toNFA(maxStates)
		if err != nil {
			return nil, err
		}
		if r.kind == REGEXP_OPTIONAL {
			return Optional(a), nil
		}
		return Repeat(a), nil
	case REGEXP_REPEAT_MIN, REGEXP_REPEAT_MINMAX:
		a, err := r.exp1.toNFA(maxStates)
		if err != nil {
			return nil, err
		}
		copies := r.min
		if r.kind == REGEXP_REPEAT_MINMAX {
			copies = r.max
		}
		if maxStates > 0 && copies > maxStates/a.GetNumStates() {
			return nil, fmt.Errorf("regexp repeats %d states %d times, limit is %d: %w",
				a.GetNumStates(), copies, maxStates, ErrTooComplex)
		}
		list := make([]*NFA, 0, copies+1)
		for i := 0; i < r.min; i++ {
			list = append(list, a)
		}
		if r.kind == REGEXP_REPEAT_MIN {
			list = append(list, Repeat(a))
		} else {
			for i := r.min; i < r.max; i++ {
				list = append(list, Optional(a))
			}
		}
		return Concatenate(list...), nil
	case REGEXP_CHAR:
		return MakeAnyOf(r.variants(r.c)...), nil
	case REGEXP_CHAR_RANGE:
		symbols := make([]Symbol, 0, r.to-r.from+1)
		for c := r.from; c <= r.to; c++ {
			symbols = append(symbols, r.variants(c)...)
		}
		return MakeAnyOf(symbols...), nil
	case REGEXP_EMPTY:
		return MakeEmpty(), nil
	case REGEXP_STRING:
		list := make([]*NFA, 0, len(r.s))
		for _, c := range r.s {
			list = append(list, MakeAnyOf(r.variants(c)...))
		}
		return Concatenate(list...), nil
	}
	return nil, fmt.Errorf("unknown regexp kind %d", r.kind)
}

// variants Returns the symbols c stands for: c itself, plus its other case when matching is
// ASCII case insensitive.
func (r *RegExp) variants(c rune) []Symbol {
	if r.flags&ASCII_CASE_INSENSITIVE == 0 || c > unicode.MaxASCII {
		return []Symbol{string(c)}
	}
	alt := unicode.ToUpper(c)
	if alt == c {
		alt = unicode.ToLower(c)
	}
	if alt == c {
		return []Symbol{string(c)}
	}
	return []Symbol{string(c), string(alt)}
}

func (r *RegExp) findLeaves(exp *RegExp, kind Kind, list *[]*NFA, maxStates int) error {
	if exp.kind == kind {
		if err := r.findLeaves(exp.exp1, kind, list, maxStates); err != nil {
			return err
		}
		return r.findLeaves(exp.exp2, kind, list, maxStates)
	}
	a, err := exp.toNFA(maxStates)
	if err != nil {
		return err
	}
	*list = append(*list, a)
	return nil
}

func (r *RegExp) String() string {
	var b strings.Builder
	r.toStringBuilder(&b)
	return b.String()
}

func (r *RegExp) toStringBuilder(b *strings.Builder) {
	switch r.kind {
	case REGEXP_UNION:
		b.WriteByte('(')
		r.exp1.toStringBuilder(b)
		b.WriteByte('|')
		r.exp2.toStringBuilder(b)
		b.WriteByte(')')
	case REGEXP_CONCATENATION:
		r.exp1.toStringBuilder(b)
		r.exp2.toStringBuilder(b)
	case REGEXP_OPTIONAL:
		b.WriteByte('(')
		r.exp1.toStringBuilder(b)
		b.WriteString(")?")
	case REGEXP_REPEAT:
		b.WriteByte('(')
		r.exp1.toStringBuilder(b)
		b.WriteString(")*")
	case REGEXP_REPEAT_MIN:
		b.WriteByte('(')
		r.exp1.toStringBuilder(b)
		fmt.Fprintf(b, "){%d,}", r.min)
	case REGEXP_REPEAT_MINMAX:
		b.WriteByte('(')
		r.exp1.toStringBuilder(b)
		fmt.Fprintf(b, "){%d,%d}", r.min, r.max)
	case REGEXP_CHAR:
		b.WriteString(quoteChar(r.c))
	case REGEXP_CHAR_RANGE:
		fmt.Fprintf(b, "[%s-%s]", quoteChar(r.from), quoteChar(r.to))
	case REGEXP_EMPTY:
		b.WriteByte('#')
	case REGEXP_STRING:
		if strings.ContainsRune(r.s, '"') {
			for _, c := range r.s {
				b.WriteString(quoteChar(c))
			}
			return
		}
		b.WriteByte('"')
		b.WriteString(r.s)
		b.WriteByte('"')
	}
}

const regExpSpecial = `|?*+{}[]()"#\-`

func quoteChar(c rune) string {
	if strings.ContainsRune(regExpSpecial, c) {
		return `\` + string(c)
	}
	return string(c)
}

type regExpParser struct {
	src   []rune
	pos   int
	flags int
}

func (p *regExpParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at position %d", ErrRegExpSyntax, fmt.Sprintf(format, args...), p.pos)
}

func (p *regExpParser) more() bool {
	return p.pos < len(p.src)
}

func (p *regExpParser) peek(s string) bool {
	return p.more() && strings.ContainsRune(s, p.src[p.pos])
}

func (p *regExpParser) match(c rune) bool {
	if p.more() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *regExpParser) next() (rune, error) {
	if !p.more() {
		return 0, p.errorf("unexpected end of expression")
	}
	ch := p.src[p.pos]
	p.pos++
	return ch, nil
}

func (p *regExpParser) check(flags int) bool {
	return p.flags&flags != 0
}

func (p *regExpParser) parseUnionExp() (*RegExp, error) {
	e, err := p.parseConcatExp()
	if err != nil {
		return nil, err
	}
	if p.match('|') {
		e2, err := p.parseUnionExp()
		if err != nil {
			return nil, err
		}
		e = makeUnion(p.flags, e, e2)
	}
	return e, nil
}

func (p *regExpParser) parseConcatExp() (*RegExp, error) {
	e, err := p.parseRepeatExp()
	if err != nil {
		return nil, err
	}
	if p.more() && !p.peek(")|") {
		e2, err := p.parseConcatExp()
		if err != nil {
			return nil, err
		}
		e = makeConcatenation(p.flags, e, e2)
	}
	return e, nil
}

func (p *regExpParser) parseInt() (int, bool, error) {
	start := p.pos
	for p.peek("0123456789") {
		p.pos++
	}
	if start == p.pos {
		return 0, false, nil
	}
	digits := string(p.src[start:p.pos])
	n, err := strconv.Atoi(digits)
	if err != nil || n > maxRepeat {
		return 0, false, p.errorf("repeat count %s exceeds %d", digits, maxRepeat)
	}
	return n, true, nil
}

func (p *regExpParser) parseRepeatExp() (*RegExp, error) {
	e, err := p.parseCharClassExp()
	if err != nil {
		return nil, err
	}

	for p.peek("?*+{") {
		if p.match('?') {
			e = makeOptional(p.flags, e)
		} else if p.match('*') {
			e = makeRepeat(p.flags, e)
		} else if p.match('+') {
			e = makeRepeatMin(p.flags, e, 1)
		} else if p.match('{') {
			n, ok, err := p.parseInt()
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, p.errorf("integer expected")
			}
			m := n
			if p.match(',') {
				m, ok, err = p.parseInt()
				if err != nil {
					return nil, err
				}
				if !ok {
					m = -1
				}
			}
			if !p.match('}') {
				return nil, p.errorf("expected '}'")
			}
			switch {
			case m == -1:
				e = makeRepeatMin(p.flags, e, n)
			case m < n:
				return nil, p.errorf("repeat range {%d,%d} is reversed", n, m)
			default:
				e = makeRepeatRange(p.flags, e, n, m)
			}
		}
	}
	return e, nil
}

func (p *regExpParser) parseCharClassExp() (*RegExp, error) {
	if p.match('[') {
		e, err := p.parseCharClasses()
		if err != nil {
			return nil, err
		}
		if !p.match(']') {
			return nil, p.errorf("expected ']'")
		}
		return e, nil
	}
	return p.parseSimpleExp()
}

func (p *regExpParser) parseCharClasses() (*RegExp, error) {
	e, err := p.parseCharClass()
	if err != nil {
		return nil, err
	}
	for p.more() && !p.peek("]") {
		e2, err := p.parseCharClass()
		if err != nil {
			return nil, err
		}
		e = makeUnion(p.flags, e, e2)
	}
	return e, nil
}

func (p *regExpParser) parseCharClass() (*RegExp, error) {
	c, err := p.parseCharExp()
	if err != nil {
		return nil, err
	}
	if p.match('-') {
		to, err := p.parseCharExp()
		if err != nil {
			return nil, err
		}
		if c > to {
			return nil, p.errorf("invalid range %c-%c", c, to)
		}
		if to-c >= maxCharRange {
			return nil, p.errorf("range %c-%c has more than %d symbols", c, to, maxCharRange)
		}
		return makeCharRange(p.flags, c, to), nil
	}
	return makeChar(p.flags, c), nil
}

func (p *regExpParser) parseSimpleExp() (*RegExp, error) {
	if p.check(EMPTY) && p.match('#') {
		return makeEmpty(p.flags), nil
	} else if p.match('"') {
		start := p.pos
		for p.more() && !p.peek(`"`) {
			p.pos++
		}
		if !p.match('"') {
			return nil, p.errorf(`expected '"'`)
		}
		return makeString(p.flags, string(p.src[start:p.pos-1])), nil
	} else if p.match('(') {
		if p.match(')') {
			return makeString(p.flags, ""), nil
		}
		e, err := p.parseUnionExp()
		if err != nil {
			return nil, err
		}
		if !p.match(')') {
			return nil, p.errorf("expected ')'")
		}
		return e, nil
	} else if p.peek("|)?*+{}]") {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}

	c, err := p.parseCharExp()
	if err != nil {
		return nil, err
	}
	return makeChar(p.flags, c), nil
}

func (p *regExpParser) parseCharExp() (rune, error) {
	p.match('\\')
	return p.next()
}

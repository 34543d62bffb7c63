package core

import (
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

// exprValue is the Pratt evaluator's working value: a Handle only. No
// numeric preference is cached; expr's arithmetic rules (spec.md section
// 4.H) try numeric conversion on each use before falling back to string
// comparison.
type exprValue struct {
	h hostops.Handle
}

// exprState holds one expr evaluation's token stream and skip-mode flag.
// skip mode is set while scanning the unchosen side of && / || / ?: so
// variable reads, command substitutions, and function calls are
// suppressed but the cursor still advances correctly (spec.md section
// 4.H, "Short-circuit & ternary").
type exprState struct {
	in   *Interp
	src  string
	pos  int
	skip int // depth counter; >0 means suppress side effects
	err  error
}

func (in *Interp) evalExprHandle(h hostops.Handle) hostops.Result {
	src := in.ops.Bytes(h)
	v, err := in.evalExprString(src)
	if err != nil {
		in.setError(err.Error())
		return hostops.Result{Code: hostops.Error}
	}
	in.ops.SetResult(v)
	return hostops.Result{Code: hostops.OK}
}

func (in *Interp) evalExprString(src string) (hostops.Handle, error) {
	st := &exprState{in: in, src: src}
	v := st.parseTernary()
	if st.err != nil {
		return 0, st.err
	}
	st.skipSpace()
	if !st.eof() {
		return 0, errf("syntax error in expression %q", src)
	}
	return v.h, nil
}

func (st *exprState) eof() bool { return st.pos >= len(st.src) }

func (st *exprState) fail(err error) exprValue {
	if st.err == nil {
		st.err = err
	}
	return exprValue{h: st.in.ops.Intern("")}
}

func (st *exprState) skipSpace() {
	for !st.eof() && (st.src[st.pos] == ' ' || st.src[st.pos] == '\t' || st.src[st.pos] == '\n' || st.src[st.pos] == '\r') {
		st.pos++
	}
}

func (st *exprState) peekOp(ops ...string) string {
	st.skipSpace()
	for _, op := range ops {
		if strings.HasPrefix(st.src[st.pos:], op) {
			// Avoid matching a prefix of a longer identifier-like operator
			// ("eq" inside "eqx") for the word operators.
			if isWordOp(op) && st.pos+len(op) < len(st.src) && isVarNameByte(st.src[st.pos+len(op)]) {
				continue
			}
			return op
		}
	}
	return ""
}

func isWordOp(op string) bool {
	switch op {
	case "eq", "ne", "lt", "le", "gt", "ge", "in", "ni":
		return true
	default:
		return false
	}
}

func (st *exprState) consume(op string) { st.pos += len(op) }

// --- Grammar, low to high precedence --------------------------------------

func (st *exprState) parseTernary() exprValue {
	cond := st.parseLogicalOr()
	if op := st.peekOp("?"); op != "" {
		st.consume(op)
		truthy := st.in.truthy(cond.h)
		st.skipIf(!truthy)
		thenV := st.parseTernary()
		st.unskipIf(!truthy)
		if op := st.peekOp(":"); op != "" {
			st.consume(op)
		} else if st.err == nil {
			st.err = errf("missing operand for ?")
		}
		st.skipIf(truthy)
		elseV := st.parseTernary()
		st.unskipIf(truthy)
		if truthy {
			return thenV
		}
		return elseV
	}
	return cond
}

func (st *exprState) skipIf(cond bool) {
	if cond {
		st.skip++
	}
}

func (st *exprState) unskipIf(cond bool) {
	if cond {
		st.skip--
	}
}

func (st *exprState) parseLogicalOr() exprValue {
	lhs := st.parseLogicalAnd()
	for {
		if op := st.peekOp("||"); op != "" {
			st.consume(op)
			short := st.in.truthy(lhs.h)
			st.skipIf(short)
			rhs := st.parseLogicalAnd()
			st.unskipIf(short)
			lhs = st.boolValue(short || st.in.truthy(rhs.h))
			continue
		}
		break
	}
	return lhs
}

func (st *exprState) parseLogicalAnd() exprValue {
	lhs := st.parseBitOr()
	for {
		if op := st.peekOp("&&"); op != "" {
			st.consume(op)
			short := !st.in.truthy(lhs.h)
			st.skipIf(short)
			rhs := st.parseBitOr()
			st.unskipIf(short)
			lhs = st.boolValue(!short && st.in.truthy(rhs.h))
			continue
		}
		break
	}
	return lhs
}

func (st *exprState) boolValue(b bool) exprValue {
	if b {
		return exprValue{h: st.in.ops.NewInt(1)}
	}
	return exprValue{h: st.in.ops.NewInt(0)}
}

func (st *exprState) parseBitOr() exprValue {
	lhs := st.parseBitXor()
	for st.peekOp("|") != "" && st.peekOp("||") == "" {
		st.consume("|")
		rhs := st.parseBitXor()
		lhs = st.intBinOp(lhs, rhs, hostops.MathOp(-1), "|")
	}
	return lhs
}

func (st *exprState) parseBitXor() exprValue {
	lhs := st.parseBitAnd()
	for st.peekOp("^") != "" {
		st.consume("^")
		rhs := st.parseBitAnd()
		lhs = st.intBinOp(lhs, rhs, hostops.MathOp(-1), "^")
	}
	return lhs
}

func (st *exprState) parseBitAnd() exprValue {
	lhs := st.parseEquality()
	for st.peekOp("&") != "" && st.peekOp("&&") == "" {
		st.consume("&")
		rhs := st.parseEquality()
		lhs = st.intBinOp(lhs, rhs, hostops.MathOp(-1), "&")
	}
	return lhs
}

func (st *exprState) parseEquality() exprValue {
	lhs := st.parseComparison()
	for {
		op := st.peekOp("==", "!=", "eq", "ne")
		if op == "" {
			break
		}
		st.consume(op)
		rhs := st.parseComparison()
		lhs = st.compareOp(lhs, rhs, op)
	}
	return lhs
}

func (st *exprState) parseComparison() exprValue {
	lhs := st.parseShift()
	for {
		op := st.peekOp("<=", ">=", "<", ">", "lt", "le", "gt", "ge", "in", "ni")
		if op == "" {
			break
		}
		st.consume(op)
		rhs := st.parseShift()
		lhs = st.compareOp(lhs, rhs, op)
	}
	return lhs
}

func (st *exprState) parseShift() exprValue {
	lhs := st.parseAdditive()
	for {
		op := st.peekOp("<<", ">>")
		if op == "" {
			break
		}
		st.consume(op)
		rhs := st.parseAdditive()
		lhs = st.intBinOp(lhs, rhs, hostops.MathOp(-1), op)
	}
	return lhs
}

func (st *exprState) parseAdditive() exprValue {
	lhs := st.parseMultiplicative()
	for {
		op := st.peekOp("+", "-")
		if op == "" {
			break
		}
		st.consume(op)
		rhs := st.parseMultiplicative()
		lhs = st.arithOp(lhs, rhs, op)
	}
	return lhs
}

func (st *exprState) parseMultiplicative() exprValue {
	lhs := st.parseExpon()
	for {
		op := st.peekOp("*", "/", "%")
		if op == "" {
			break
		}
		st.consume(op)
		rhs := st.parseExpon()
		lhs = st.arithOp(lhs, rhs, op)
	}
	return lhs
}

func (st *exprState) parseExpon() exprValue {
	lhs := st.parseUnary()
	if op := st.peekOp("**"); op != "" {
		st.consume(op)
		rhs := st.parseExpon() // right-assoc
		return st.arithOp(lhs, rhs, "**")
	}
	return lhs
}

func (st *exprState) parseUnary() exprValue {
	op := st.peekOp("-", "+", "~", "!")
	if op == "" {
		return st.parsePrimary()
	}
	st.consume(op)
	v := st.parseUnary()
	if st.skip > 0 {
		return v
	}
	return st.applyUnary(op, v)
}

// --- Primaries --------------------------------------------------------

func (st *exprState) parsePrimary() exprValue {
	st.skipSpace()
	if st.eof() {
		st.fail(errf("missing operand in expression"))
		return exprValue{h: st.in.ops.Intern("")}
	}
	c := st.src[st.pos]
	switch {
	case c == '(':
		st.pos++
		v := st.parseTernary()
		st.skipSpace()
		if !st.eof() && st.src[st.pos] == ')' {
			st.pos++
		} else if st.err == nil {
			st.err = errf("unbalanced open paren in expression %q", st.src)
		}
		return v
	case c == '{':
		return st.parseBraced()
	case c == '"':
		return st.parseQuoted()
	case c == '$':
		return st.parseVariable()
	case c == '[':
		return st.parseCommandSubst()
	case c >= '0' && c <= '9', c == '.':
		return st.parseNumber()
	case isVarNameByte(c):
		return st.parseIdentifier()
	case c == ')':
		st.fail(errf("too many close parens in expression %q", st.src))
		return exprValue{h: st.in.ops.Intern("")}
	default:
		st.fail(errf("syntax error in expression %q", st.src))
		return exprValue{h: st.in.ops.Intern("")}
	}
}

func (st *exprState) parseBraced() exprValue {
	end := skipBalanced(st.src, st.pos, '{', '}')
	if end < 0 {
		st.fail(errf("missing close-brace in expression"))
		return exprValue{h: st.in.ops.Intern("")}
	}
	text := st.src[st.pos+1 : end-1]
	st.pos = end
	return exprValue{h: st.in.ops.Intern(text)}
}

func (st *exprState) parseQuoted() exprValue {
	end := skipQuoted(st.src, st.pos)
	if end < 0 {
		st.fail(errf("missing close-quote in expression"))
		return exprValue{h: st.in.ops.Intern("")}
	}
	text := st.src[st.pos+1 : end-1]
	st.pos = end
	if st.skip > 0 {
		return exprValue{h: st.in.ops.Intern("")}
	}
	sub, err := st.in.substSpan(text)
	if err != nil {
		st.fail(err)
		return exprValue{h: st.in.ops.Intern("")}
	}
	return exprValue{h: st.in.ops.Intern(sub)}
}

func (st *exprState) parseVariable() exprValue {
	s, n, err := st.in.substVariableSkippable(st.src, st.pos, st.skip > 0)
	if err != nil {
		st.fail(err)
		return exprValue{h: st.in.ops.Intern("")}
	}
	st.pos += n
	return exprValue{h: st.in.ops.Intern(s)}
}

func (st *exprState) parseCommandSubst() exprValue {
	if st.skip > 0 {
		n := skipBalanced(st.src, st.pos, '[', ']')
		if n < 0 {
			st.fail(errf("missing close-bracket in expression"))
			return exprValue{h: st.in.ops.Intern("")}
		}
		st.pos = n
		return exprValue{h: st.in.ops.Intern("")}
	}
	s, n, err := st.in.substCommand(st.src, st.pos)
	if err != nil {
		st.fail(err)
		return exprValue{h: st.in.ops.Intern("")}
	}
	st.pos += n
	return exprValue{h: coerceNumericLike(st.in, s)}
}

// coerceNumericLike implements spec.md section 4.H's rule for command
// results inside expr: prefer double if the text looks like one, else
// integer, else keep as string.
func coerceNumericLike(in *Interp, s string) hostops.Handle {
	if looksDouble(s) {
		if f, ok := parseDoubleLoose(s); ok {
			return in.ops.NewDouble(f)
		}
	}
	if iv, ok := parseIntLoose(s); ok {
		return in.ops.NewInt(iv)
	}
	return in.ops.Intern(s)
}

func looksDouble(s string) bool {
	return strings.ContainsAny(s, ".eE") || s == "Inf" || s == "-Inf" || s == "NaN"
}

func (st *exprState) parseNumber() exprValue {
	start := st.pos
	for !st.eof() && isNumberByte(st.src[st.pos]) {
		st.pos++
	}
	text := st.src[start:st.pos]
	if iv, ok := parseIntLoose(text); ok {
		return exprValue{h: st.in.ops.NewInt(iv)}
	}
	if f, ok := parseDoubleLoose(text); ok {
		return exprValue{h: st.in.ops.NewDouble(f)}
	}
	st.fail(errf("invalid number %q in expression", text))
	return exprValue{h: st.in.ops.Intern("")}
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '_' ||
		c == 'x' || c == 'X' || c == 'b' || c == 'B' || c == 'o' || c == 'O' ||
		c == 'e' || c == 'E' ||
		(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
		c == '+' || c == '-'
}

// parseIdentifier handles bareword literals (true/false/yes/no/on/off)
// and function calls name(args...) routed to tcl::mathfunc::name.
func (st *exprState) parseIdentifier() exprValue {
	start := st.pos
	for !st.eof() && (isVarNameByte(st.src[st.pos])) {
		st.pos++
	}
	name := st.src[start:st.pos]
	st.skipSpace()
	if !st.eof() && st.src[st.pos] == '(' {
		return st.parseFunctionCall(name)
	}
	if b, ok := boolLiteral(name); ok {
		return exprValue{h: st.in.ops.NewInt(b)}
	}
	st.fail(errf("invalid bareword %q", name))
	return exprValue{h: st.in.ops.Intern("")}
}

func boolLiteral(name string) (int64, bool) {
	switch strings.ToLower(name) {
	case "true", "yes", "on":
		return 1, true
	case "false", "no", "off":
		return 0, true
	default:
		return 0, false
	}
}

func (st *exprState) parseFunctionCall(name string) exprValue {
	st.pos++ // skip '('
	var args []exprValue
	st.skipSpace()
	if !st.eof() && st.src[st.pos] != ')' {
		for {
			args = append(args, st.parseTernary())
			st.skipSpace()
			if !st.eof() && st.src[st.pos] == ',' {
				st.pos++
				continue
			}
			break
		}
	}
	st.skipSpace()
	if !st.eof() && st.src[st.pos] == ')' {
		st.pos++
	} else if st.err == nil {
		st.err = errf("missing close-paren in function call %q", name)
	}
	if st.skip > 0 {
		return exprValue{h: st.in.ops.Intern("")}
	}
	argv := make([]hostops.Handle, 0, len(args)+1)
	argv = append(argv, st.in.ops.Intern("tcl::mathfunc::"+name))
	for _, a := range args {
		argv = append(argv, a.h)
	}
	res := st.in.call(argv)
	if res.Code != hostops.OK {
		st.fail(errf("%s", st.in.ops.Bytes(st.in.ops.GetResult())))
		return exprValue{h: st.in.ops.Intern("")}
	}
	return exprValue{h: st.in.ops.GetResult()}
}

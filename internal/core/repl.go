package core

// CheckComplete reports whether script is a syntactically complete TCL
// script — no unclosed brace, bracket, or quoted word — without evaluating
// it. REPLs use this to decide whether to keep reading more input lines
// before calling EvalScript.
func CheckComplete(script string) (complete bool, errMsg string) {
	p := newParser(script)
	for {
		words, status, msg := p.next()
		if status == statusIncomplete {
			return false, msg
		}
		if status == statusSyntaxError {
			return true, msg
		}
		if words == nil {
			return true, ""
		}
	}
}

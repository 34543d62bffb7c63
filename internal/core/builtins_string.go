package core

import (
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

func biString(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "string subcommand ?arg ...?")
	}
	sub := in.ops.Bytes(args[0])
	rest := args[1:]
	switch sub {
	case "length":
		return stringLength(in, rest)
	case "index":
		return stringIndex(in, rest)
	case "range":
		return stringRange(in, rest)
	case "match":
		return stringMatch(in, rest)
	case "compare":
		return stringCompare(in, rest)
	case "equal":
		return stringEqual(in, rest)
	case "first":
		return stringFirst(in, rest)
	case "last":
		return stringLast(in, rest)
	case "repeat":
		return stringRepeat(in, rest)
	case "reverse":
		return stringReverse(in, rest)
	case "insert":
		return stringInsert(in, rest)
	case "replace":
		return stringReplace(in, rest)
	case "is":
		return stringIs(in, rest)
	case "map":
		return stringMap(in, rest)
	case "tolower":
		return stringCase(in, rest, "lower")
	case "toupper":
		return stringCase(in, rest, "upper")
	case "totitle":
		return stringCase(in, rest, "title")
	case "trim":
		return stringTrim(in, rest, true, true)
	case "trimleft":
		return stringTrim(in, rest, true, false)
	case "trimright":
		return stringTrim(in, rest, false, true)
	case "cat":
		return stringCat(in, rest)
	default:
		return errResult(in, "unknown or ambiguous subcommand %q to \"string\"", sub)
	}
}

func stringLength(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "string length string")
	}
	return okResult(in, in.ops.NewInt(int64(in.ops.RuneLen(args[0]))))
}

func stringIndex(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 2 {
		return wrongArgs(in, "string index string charIndex")
	}
	n := in.ops.RuneLen(args[0])
	idx, ok := resolveIndex(in.ops.Bytes(args[1]), n)
	if !ok {
		return errResult(in, "bad index %q", in.ops.Bytes(args[1]))
	}
	if idx < 0 || idx >= n {
		return okString(in, "")
	}
	r, _ := in.ops.RuneAt(args[0], idx)
	return okString(in, string(r))
}

func stringRange(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 3 {
		return wrongArgs(in, "string range string first last")
	}
	n := in.ops.RuneLen(args[0])
	lo, ok1 := resolveIndex(in.ops.Bytes(args[1]), n)
	hi, ok2 := resolveIndex(in.ops.Bytes(args[2]), n)
	if !ok1 || !ok2 {
		return errResult(in, "bad index in string range")
	}
	lo, hi = clampRange(lo, hi, n)
	if lo > hi {
		return okString(in, "")
	}
	return okResult(in, in.ops.RuneSlice(args[0], lo, hi+1))
}

func stringMatch(in *Interp, args []hostops.Handle) hostops.Result {
	nocase := false
	i := 0
	if len(args) > 0 && in.ops.Bytes(args[0]) == "-nocase" {
		nocase = true
		i++
	}
	if len(args)-i != 2 {
		return wrongArgs(in, "string match ?-nocase? pattern string")
	}
	return okResult(in, in.ops.NewInt(boolInt(in.ops.Match(args[i], args[i+1], nocase))))
}

func stringCompare(in *Interp, args []hostops.Handle) hostops.Result {
	nocase := false
	length := -1
	i := 0
	for i < len(args)-2 {
		switch in.ops.Bytes(args[i]) {
		case "-nocase":
			nocase = true
		case "-length":
			i++
			if i >= len(args)-2 {
				return wrongArgs(in, "string compare ?-nocase? ?-length int? string1 string2")
			}
			n, err := needInt(in, args[i])
			if err != nil {
				return errResult(in, "%s", err.Error())
			}
			length = int(n)
		}
		i++
	}
	if len(args)-i != 2 {
		return wrongArgs(in, "string compare ?-nocase? ?-length int? string1 string2")
	}
	a, b := in.ops.Bytes(args[i]), in.ops.Bytes(args[i+1])
	if length >= 0 {
		a = truncRunes(a, length)
		b = truncRunes(b, length)
	}
	if nocase {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}
	return okResult(in, in.ops.NewInt(int64(sign(strings.Compare(a, b)))))
}

func stringEqual(in *Interp, args []hostops.Handle) hostops.Result {
	res := stringCompare(in, args)
	if res.Code != hostops.OK {
		return res
	}
	v, _ := in.ops.Int(in.ops.GetResult())
	return okResult(in, in.ops.NewInt(boolInt(v == 0)))
}

func stringFirst(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 || len(args) > 3 {
		return wrongArgs(in, "string first needleString haystackString ?startIndex?")
	}
	needle, hay := in.ops.Bytes(args[0]), in.ops.Bytes(args[1])
	start := 0
	if len(args) == 3 {
		n := len([]rune(hay))
		idx, ok := resolveIndex(in.ops.Bytes(args[2]), n)
		if !ok {
			return errResult(in, "bad index %q", in.ops.Bytes(args[2]))
		}
		start = idx
	}
	runes := []rune(hay)
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		return okResult(in, in.ops.NewInt(-1))
	}
	idx := strings.Index(string(runes[start:]), needle)
	if idx < 0 {
		return okResult(in, in.ops.NewInt(-1))
	}
	return okResult(in, in.ops.NewInt(int64(start+len([]rune(string(runes[start:])[:idx])))))
}

func stringLast(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 || len(args) > 3 {
		return wrongArgs(in, "string last needleString haystackString ?lastIndex?")
	}
	needle, hay := in.ops.Bytes(args[0]), in.ops.Bytes(args[1])
	end := len([]rune(hay))
	if len(args) == 3 {
		idx, ok := resolveIndex(in.ops.Bytes(args[2]), end)
		if !ok {
			return errResult(in, "bad index %q", in.ops.Bytes(args[2]))
		}
		end = idx + 1
	}
	runes := []rune(hay)
	if end > len(runes) {
		end = len(runes)
	}
	if end < 0 {
		return okResult(in, in.ops.NewInt(-1))
	}
	idx := strings.LastIndex(string(runes[:end]), needle)
	if idx < 0 {
		return okResult(in, in.ops.NewInt(-1))
	}
	return okResult(in, in.ops.NewInt(int64(len([]rune(string(runes[:end])[:idx])))))
}

func stringRepeat(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 2 {
		return wrongArgs(in, "string repeat string count")
	}
	n, err := needInt(in, args[1])
	if err != nil || n < 0 {
		return errResult(in, "bad count %q", in.ops.Bytes(args[1]))
	}
	return okString(in, strings.Repeat(in.ops.Bytes(args[0]), int(n)))
}

func stringReverse(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "string reverse string")
	}
	r := []rune(in.ops.Bytes(args[0]))
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return okString(in, string(r))
}

func stringInsert(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 3 {
		return wrongArgs(in, "string insert string index insertString")
	}
	r := []rune(in.ops.Bytes(args[0]))
	idx, ok := resolveIndex(in.ops.Bytes(args[1]), len(r))
	if !ok {
		return errResult(in, "bad index %q", in.ops.Bytes(args[1]))
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(r) {
		idx = len(r)
	}
	out := make([]rune, 0, len(r)+1)
	out = append(out, r[:idx]...)
	out = append(out, []rune(in.ops.Bytes(args[2]))...)
	out = append(out, r[idx:]...)
	return okString(in, string(out))
}

func stringReplace(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 3 || len(args) > 4 {
		return wrongArgs(in, "string replace string first last ?newString?")
	}
	r := []rune(in.ops.Bytes(args[0]))
	n := len(r)
	lo, ok1 := resolveIndex(in.ops.Bytes(args[1]), n)
	hi, ok2 := resolveIndex(in.ops.Bytes(args[2]), n)
	if !ok1 || !ok2 {
		return errResult(in, "bad index in string replace")
	}
	if lo < 0 {
		lo = 0
	}
	if hi >= n {
		hi = n - 1
	}
	if lo > hi || lo >= n {
		return okString(in, string(r))
	}
	repl := ""
	if len(args) == 4 {
		repl = in.ops.Bytes(args[3])
	}
	out := append([]rune(nil), r[:lo]...)
	out = append(out, []rune(repl)...)
	out = append(out, r[hi+1:]...)
	return okString(in, string(out))
}

func stringIs(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "string is class ?-strict? ?-failindex var? string")
	}
	class := in.ops.Bytes(args[0])
	s := in.ops.Bytes(args[len(args)-1])
	var rc hostops.RuneClass
	switch class {
	case "alnum":
		rc = hostops.ClassAlnum
	case "alpha":
		rc = hostops.ClassAlpha
	case "ascii":
		rc = hostops.ClassASCII
	case "control":
		rc = hostops.ClassControl
	case "digit":
		rc = hostops.ClassDigit
	case "graph":
		rc = hostops.ClassGraph
	case "lower":
		rc = hostops.ClassLower
	case "print":
		rc = hostops.ClassPrint
	case "punct":
		rc = hostops.ClassPunct
	case "space":
		rc = hostops.ClassSpace
	case "upper":
		rc = hostops.ClassUpper
	case "wordchar":
		rc = hostops.ClassWordchar
	case "xdigit":
		rc = hostops.ClassXdigit
	case "integer":
		_, ok := in.ops.Int(in.ops.Intern(s))
		return okResult(in, in.ops.NewInt(boolInt(s == "" || ok)))
	case "double":
		_, ok := in.ops.Double(in.ops.Intern(s))
		return okResult(in, in.ops.NewInt(boolInt(s == "" || ok)))
	case "boolean":
		_, ok := parseBoolLoose(s)
		return okResult(in, in.ops.NewInt(boolInt(s == "" || ok)))
	case "list":
		_, err := in.ops.ParseList(in.ops.Intern(s))
		return okResult(in, in.ops.NewInt(boolInt(err == nil)))
	default:
		return errResult(in, "bad class %q", class)
	}
	if s == "" {
		return okResult(in, in.ops.NewInt(1))
	}
	for _, r := range s {
		if !in.ops.IsClass(r, rc) {
			return okResult(in, in.ops.NewInt(0))
		}
	}
	return okResult(in, in.ops.NewInt(1))
}

func stringMap(in *Interp, args []hostops.Handle) hostops.Result {
	nocase := false
	i := 0
	if len(args) > 0 && in.ops.Bytes(args[0]) == "-nocase" {
		nocase = true
		i++
	}
	if len(args)-i != 2 {
		return wrongArgs(in, "string map ?-nocase? mapping string")
	}
	mapping, err := in.ops.ParseList(args[i])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	pairs := in.ops.Items(mapping)
	s := in.ops.Bytes(args[i+1])
	var oldNew []string
	for j := 0; j+1 < len(pairs); j += 2 {
		oldNew = append(oldNew, in.ops.Bytes(pairs[j]), in.ops.Bytes(pairs[j+1]))
	}
	if nocase {
		var b strings.Builder
		rest := s
	outer:
		for len(rest) > 0 {
			for j := 0; j+1 < len(oldNew); j += 2 {
				from := oldNew[j]
				if from != "" && len(rest) >= len(from) && strings.EqualFold(rest[:len(from)], from) {
					b.WriteString(oldNew[j+1])
					rest = rest[len(from):]
					continue outer
				}
			}
			b.WriteByte(rest[0])
			rest = rest[1:]
		}
		return okString(in, b.String())
	}
	return okString(in, strings.NewReplacer(oldNew...).Replace(s))
}

func stringCase(in *Interp, args []hostops.Handle, mode string) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "string to"+mode+" string")
	}
	switch mode {
	case "lower":
		return okResult(in, in.ops.ToLower(args[0]))
	case "upper":
		return okResult(in, in.ops.ToUpper(args[0]))
	default:
		return okResult(in, in.ops.ToTitle(args[0]))
	}
}

func stringTrim(in *Interp, args []hostops.Handle, left, right bool) hostops.Result {
	if len(args) < 1 || len(args) > 2 {
		return wrongArgs(in, "string trim string ?chars?")
	}
	chars := " \t\n\r"
	if len(args) == 2 {
		chars = in.ops.Bytes(args[1])
	}
	s := in.ops.Bytes(args[0])
	if left {
		s = strings.TrimLeft(s, chars)
	}
	if right {
		s = strings.TrimRight(s, chars)
	}
	return okString(in, s)
}

func stringCat(in *Interp, args []hostops.Handle) hostops.Result {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(in.ops.Bytes(a))
	}
	return okString(in, b.String())
}

func boolInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func truncRunes(s string, n int) string {
	r := []rune(s)
	if n < len(r) {
		r = r[:n]
	}
	return string(r)
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

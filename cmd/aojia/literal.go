package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/smnsjas/go-aojia/dispatch"
	"github.com/smnsjas/go-aojia/variant"
)

var errUnterminated = errors.New("unterminated quoted string")

// splitLine splits a REPL line into words. Double quoted words may contain
// spaces and Go escapes; the quotes are kept so parseArg can tell a quoted
// "42" from the integer 42.
func splitLine(line string) ([]string, error) {
	var (
		words []string
		cur   strings.Builder
		inQ   bool
		esc   bool
		has   bool
	)
	for _, r := range line {
		switch {
		case inQ:
			cur.WriteRune(r)
			switch {
			case esc:
				esc = false
			case r == '\\':
				esc = true
			case r == '"':
				inQ = false
			}
		case r == '"':
			inQ, has = true, true
			cur.WriteRune(r)
		case unicode.IsSpace(r):
			if has {
				words = append(words, cur.String())
				cur.Reset()
				has = false
			}
		default:
			has = true
			cur.WriteRune(r)
		}
	}
	if inQ {
		return nil, errUnterminated
	}
	if has {
		words = append(words, cur.String())
	}
	return words, nil
}

// unquote strips the quotes of a fully quoted word.
func unquote(word string) string {
	if len(word) >= 2 && strings.HasPrefix(word, `"`) && strings.HasSuffix(word, `"`) {
		if s, err := strconv.Unquote(word); err == nil {
			return s
		}
	}
	return word
}

// outPrefix marks an out parameter without a shell operator, for use on
// the command line where "&" would need quoting.
const outPrefix = "out:"

// parseArg converts one literal into a parameter. pos names anonymous out
// parameters.
func parseArg(word string, pos int) (dispatch.Param, error) {
	name := fmt.Sprintf("arg%d", pos)

	switch {
	case word == "&" || word == outPrefix:
		return dispatch.OutParam(fmt.Sprintf("out%d", pos)), nil
	case strings.HasPrefix(word, "&"):
		return dispatch.OutParam(word[1:]), nil
	case strings.HasPrefix(word, outPrefix):
		return dispatch.OutParam(word[len(outPrefix):]), nil
	case strings.HasPrefix(word, `"`):
		s, err := strconv.Unquote(word)
		if err != nil {
			return dispatch.Param{}, fmt.Errorf("argument %d: bad string %s", pos, word)
		}
		return dispatch.InParam(name, variant.NewString(s)), nil
	case word == "true" || word == "false":
		return dispatch.InParam(name, variant.NewBool(word == "true")), nil
	case word == "null":
		return dispatch.InParam(name, variant.NewNull()), nil
	}

	if n, err := strconv.ParseInt(word, 10, 64); err == nil {
		if n >= math.MinInt32 && n <= math.MaxInt32 {
			return dispatch.InParam(name, variant.NewInt32(int32(n))), nil
		}
		return dispatch.InParam(name, variant.NewInt64(n)), nil
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return dispatch.InParam(name, variant.NewFloat64(f)), nil
	}
	return dispatch.InParam(name, variant.NewString(word)), nil
}

// parseArgs converts literals into parameters in caller-visible order.
func parseArgs(words []string) ([]dispatch.Param, error) {
	params := make([]dispatch.Param, 0, len(words))
	for i, w := range words {
		p, err := parseArg(w, i)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

// Package transexpr translates SNAP band-maths expressions into the
// expression syntax of the cube generator.
package transexpr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/sliink/l2gen/internal/model"
)

// Token kinds
const (
	KindNum = "NUM"
	KindID  = "ID"
	KindKW  = "KW"
	KindOp  = "OP"
	KindPar = "PAR"
)

// Token is a lexical token of an expression
type Token struct {
	Kind  string
	Value string
}

// Attributes holding expressions that are translated
var expressionAttrs = []string{"expression", "valid_pixel_expression"}

var kwMappings = map[string]string{
	"NOT":   "not",
	"AND":   "and",
	"OR":    "or",
	"true":  "True",
	"false": "False",
	"NaN":   "NaN",
}

// ?: becomes if/else so the result stays syntactically valid
var opMappings = map[string]string{
	"?":  "if",
	":":  "else",
	"!":  "not",
	"&&": "and",
	"||": "or",
}

var tokenRegex = regexp.MustCompile(strings.Join([]string{
	`(?P<NUM>\d+(\.\d*)?)`,
	`(?P<ID>[_A-Za-z][_A-Za-z0-9]*)`,
	`(?P<OP>&&|\|\||\*\*|!=|==|>=|<=|<|>|\+|-|\*|!|%|\^|\.|\?|:|\||&)`,
	`(?P<PAR>[()])`,
	`(?P<WHITE>[ \t\n\r]+)`,
	`(?P<ERR>.)`,
}, "|"))

// Tokenize splits a SNAP expression into tokens
func Tokenize(expr string) ([]Token, error) {
	names := tokenRegex.SubexpNames()
	var tokens []Token
	for _, m := range tokenRegex.FindAllStringSubmatchIndex(expr, -1) {
		kind, value := "", ""
		for i := 1; i < len(names); i++ {
			if names[i] != "" && m[2*i] >= 0 {
				kind, value = names[i], expr[m[2*i]:m[2*i+1]]
				break
			}
		}
		switch kind {
		case "WHITE":
			continue
		case "ERR":
			return nil, fmt.Errorf("'%s' unexpected in expression '%s'", value, expr)
		case KindID:
			if _, ok := kwMappings[value]; ok {
				kind = KindKW
			}
		case KindOp:
			if kw, ok := opMappings[value]; ok {
				kind, value = KindKW, kw
			}
		}
		tokens = append(tokens, Token{Kind: kind, Value: value})
	}
	return tokens, nil
}

// Translate converts a SNAP band-maths expression into generator syntax
func Translate(snapExpr string) (string, error) {
	tokens, err := Tokenize(snapExpr)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	lastKind := ""
	for _, tok := range tokens {
		value := tok.Value
		switch tok.Kind {
		case KindID, KindKW, KindNum:
			if mapped, ok := kwMappings[value]; ok {
				value = mapped
			}
			if lastKind == KindID || lastKind == KindKW || lastKind == KindNum {
				b.WriteByte(' ')
			}
		case KindOp:
			if lastKind == KindOp {
				b.WriteByte(' ')
			}
		}
		b.WriteString(value)
		lastKind = tok.Kind
	}
	return b.String(), nil
}

// TranslateAttributes returns a copy of ds whose expression attributes are translated
func TranslateAttributes(ds *model.Dataset) (*model.Dataset, error) {
	ds = ds.Copy()
	for _, v := range ds.Variables() {
		for _, attr := range expressionAttrs {
			raw, ok := v.Attrs[attr]
			if !ok {
				continue
			}
			s, err := cast.ToStringE(raw)
			if err != nil {
				return nil, fmt.Errorf("variable %q: attribute %q: %w", v.Name, attr, err)
			}
			translated, err := Translate(s)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", v.Name, err)
			}
			v.Attrs[attr] = translated
		}
	}
	return ds, nil
}

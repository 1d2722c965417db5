package routegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/JaimeStill/autoroute/pkg/module"
)

// Prefix marks a route directive comment.
const Prefix = "//route:"

var methods = map[string]string{
	"get":    "Get",
	"post":   "Post",
	"put":    "Put",
	"delete": "Delete",
	"patch":  "Patch",
	"any":    "Route",
}

var httpMethods = map[string]string{
	"get":    http.MethodGet,
	"post":   http.MethodPost,
	"put":    http.MethodPut,
	"delete": http.MethodDelete,
	"patch":  http.MethodPatch,
	"any":    module.MethodAny,
}

// Directive is one parsed route directive.
type Directive struct {
	Func      string
	Method    string
	Path      string
	Modifiers []Modifier
	Pos       token.Position
}

// Modifier is a key = expr argument. Expr is kept as written.
type Modifier struct {
	Key  string
	Expr string
}

// Builder returns the routes package function the directive expands to.
func (d Directive) Builder() string {
	return methods[d.Method]
}

// Option returns the module option call for the modifier.
func (m Modifier) Option() string {
	first, size := utf8.DecodeRuneInString(m.Key)
	return "module." + string(unicode.ToUpper(first)) + m.Key[size:] + "(" + m.Expr + ")"
}

// Error is a definition-time failure tied to a source position.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ScanFile parses src and returns its directives in source order. Malformed
// directives and directives not attached to a top-level function are
// returned together as a scanner.ErrorList sorted by position.
func ScanFile(fset *token.FileSet, filename string, src []byte) ([]Directive, error) {
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var (
		directives []Directive
		errs       scanner.ErrorList
		attached   = make(map[*ast.Comment]bool)
	)

	fail := func(pos token.Position, format string, args ...any) {
		errs.Add(pos, fmt.Sprintf(format, args...))
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}
		for _, c := range fn.Doc.List {
			if !strings.HasPrefix(c.Text, Prefix) {
				continue
			}
			attached[c] = true
			pos := fset.Position(c.Slash)

			if fn.Recv != nil {
				fail(pos, "route directive on method %s: directives must precede a top-level function", fn.Name.Name)
				continue
			}

			d, err := parseDirective(pos, strings.TrimPrefix(c.Text, Prefix))
			if err != nil {
				errs.Add(err.Pos, err.Msg)
				continue
			}
			d.Func = fn.Name.Name
			directives = append(directives, d)
		}
	}

	for _, group := range file.Comments {
		for _, c := range group.List {
			if strings.HasPrefix(c.Text, Prefix) && !attached[c] {
				fail(fset.Position(c.Slash), "route directive must precede a top-level function")
			}
		}
	}

	if len(errs) > 0 {
		errs.Sort()
		return nil, errs.Err()
	}
	return directives, nil
}

type argToken struct {
	off int
	tok token.Token
	lit string
}

func parseDirective(pos token.Position, text string) (Directive, *Error) {
	at := func(offset int) token.Position {
		p := pos
		p.Column += len(Prefix) + offset
		p.Offset += len(Prefix) + offset
		return p
	}

	method, rest := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		_, size := utf8.DecodeRuneInString(text[i:])
		method, rest = text[:i], text[i+size:]
	}
	if _, ok := methods[method]; !ok {
		return Directive{}, &Error{Pos: pos, Msg: fmt.Sprintf("unknown route method %q (want get, post, put, delete, patch, or any)", method)}
	}

	d := Directive{Method: method, Path: `"/"`, Pos: pos}
	argsOffset := len(text) - len(rest)

	args, err := splitArgs(rest)
	if err != nil {
		return Directive{}, &Error{Pos: at(argsOffset + err.off), Msg: err.msg}
	}

	for i, arg := range args {
		argPos := at(argsOffset + arg[0].off)

		if i == 0 {
			if len(arg) != 1 || arg[0].tok != token.STRING {
				return Directive{}, &Error{
					Pos: argPos,
					Msg: fmt.Sprintf("route:%s: first argument must be a string literal path such as \"/path\", got %s", method, argText(rest, arg)),
				}
			}
			path, uerr := strconv.Unquote(arg[0].lit)
			if uerr != nil {
				return Directive{}, &Error{Pos: argPos, Msg: fmt.Sprintf("route:%s: invalid path literal %s", method, arg[0].lit)}
			}
			if _, derr := module.Declare(httpMethods[method], path, func(http.ResponseWriter, *http.Request) {}); derr != nil {
				return Directive{}, &Error{Pos: argPos, Msg: fmt.Sprintf("route:%s: %v", method, derr)}
			}
			d.Path = arg[0].lit
			continue
		}

		if len(arg) < 3 || arg[0].tok != token.IDENT || arg[1].tok != token.ASSIGN {
			return Directive{}, &Error{
				Pos: argPos,
				Msg: fmt.Sprintf("route:%s: modifier must have the form key = expr, got %s", method, argText(rest, arg)),
			}
		}

		expr := strings.TrimSpace(rest[arg[2].off:argEnd(rest, arg)])
		if _, perr := parser.ParseExpr(expr); perr != nil {
			return Directive{}, &Error{
				Pos: at(argsOffset + arg[2].off),
				Msg: fmt.Sprintf("route:%s: modifier %s: invalid expression %s", method, arg[0].lit, expr),
			}
		}

		d.Modifiers = append(d.Modifiers, Modifier{Key: arg[0].lit, Expr: expr})
	}

	return d, nil
}

type splitError struct {
	off int
	msg string
}

// splitArgs tokenizes src and splits it on top-level commas.
func splitArgs(src string) ([][]argToken, *splitError) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}

	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var (
		s       scanner.Scanner
		serr    *splitError
		args    [][]argToken
		current []argToken
		depth   int
	)

	s.Init(file, []byte(src), func(p token.Position, msg string) {
		if serr == nil {
			serr = &splitError{off: p.Offset, msg: msg}
		}
	}, 0)

	for {
		p, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}

		off := file.Offset(p)
		switch tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		case token.COMMA:
			if depth == 0 {
				if len(current) == 0 {
					return nil, &splitError{off: off, msg: "empty route argument"}
				}
				args = append(args, current)
				current = nil
				continue
			}
		}

		if lit == "" {
			lit = tok.String()
		}
		current = append(current, argToken{off: off, tok: tok, lit: lit})
	}

	if serr != nil {
		return nil, serr
	}
	if len(current) == 0 {
		return nil, &splitError{off: len(src), msg: "trailing comma in route arguments"}
	}
	return append(args, current), nil
}

func argEnd(_ string, arg []argToken) int {
	last := arg[len(arg)-1]
	return last.off + len(last.lit)
}

func argText(src string, arg []argToken) string {
	return strings.TrimSpace(src[arg[0].off:argEnd(src, arg)])
}

package routegen_test

import (
	"go/token"
	"strings"
	"testing"

	"github.com/JaimeStill/autoroute/internal/routegen"
)

const validSrc = `package handlers

import "net/http"

//route:get "/a"
func a(w http.ResponseWriter, r *http.Request) {}

// b accepts a payload.
//
//route:post "/b", data = "<x>"
func b(w http.ResponseWriter, r *http.Request) {}

//route:any "/c"
func c(w http.ResponseWriter, r *http.Request) {}

//route:get
func index(w http.ResponseWriter, r *http.Request) {}

//route:patch "/users/<id>", rank = 2, tags = strings.ToLower("Users"), format = "json"
func patchUser(w http.ResponseWriter, r *http.Request) {}

//route:get "/one"
//route:get "/two"
func twice(w http.ResponseWriter, r *http.Request) {}

func plain(w http.ResponseWriter, r *http.Request) {}
`

func TestScanFile(t *testing.T) {
	directives, err := routegen.ScanFile(token.NewFileSet(), "handlers.go", []byte(validSrc))
	if err != nil {
		t.Fatalf("ScanFile() error = %v", err)
	}

	want := []struct {
		fn      string
		method  string
		path    string
		builder string
	}{
		{"a", "get", `"/a"`, "Get"},
		{"b", "post", `"/b"`, "Post"},
		{"c", "any", `"/c"`, "Route"},
		{"index", "get", `"/"`, "Get"},
		{"patchUser", "patch", `"/users/<id>"`, "Patch"},
		{"twice", "get", `"/one"`, "Get"},
		{"twice", "get", `"/two"`, "Get"},
	}

	if len(directives) != len(want) {
		t.Fatalf("len(directives) = %d, want %d", len(directives), len(want))
	}

	for i, w := range want {
		d := directives[i]
		if d.Func != w.fn || d.Method != w.method || d.Path != w.path || d.Builder() != w.builder {
			t.Errorf("directive %d = {%s %s %s %s}, want {%s %s %s %s}",
				i, d.Func, d.Method, d.Path, d.Builder(), w.fn, w.method, w.path, w.builder)
		}
	}
}

func TestScanFile_Modifiers(t *testing.T) {
	directives, err := routegen.ScanFile(token.NewFileSet(), "handlers.go", []byte(validSrc))
	if err != nil {
		t.Fatalf("ScanFile() error = %v", err)
	}

	post := directives[1]
	if len(post.Modifiers) != 1 || post.Modifiers[0].Option() != `module.Data("<x>")` {
		t.Errorf("post modifiers = %+v, want module.Data(\"<x>\")", post.Modifiers)
	}

	patch := directives[4]
	want := []string{
		`module.Rank(2)`,
		`module.Tags(strings.ToLower("Users"))`,
		`module.Format("json")`,
	}
	if len(patch.Modifiers) != len(want) {
		t.Fatalf("len(patch.Modifiers) = %d, want %d", len(patch.Modifiers), len(want))
	}
	for i, w := range want {
		if got := patch.Modifiers[i].Option(); got != w {
			t.Errorf("modifier %d = %q, want %q", i, got, w)
		}
	}
}

func TestScanFile_Position(t *testing.T) {
	directives, err := routegen.ScanFile(token.NewFileSet(), "handlers.go", []byte(validSrc))
	if err != nil {
		t.Fatalf("ScanFile() error = %v", err)
	}

	if pos := directives[0].Pos; pos.Line != 5 || pos.Column != 1 {
		t.Errorf("Pos = %d:%d, want 5:1", pos.Line, pos.Column)
	}
}

func TestScanFile_TabSeparated(t *testing.T) {
	src := "package p\n\n//route:post\t\"/b\",\tdata = \"<x>\"\nfunc h() {}\n"

	directives, err := routegen.ScanFile(token.NewFileSet(), "h.go", []byte(src))
	if err != nil {
		t.Fatalf("ScanFile() error = %v", err)
	}
	if len(directives) != 1 {
		t.Fatalf("len(directives) = %d, want 1", len(directives))
	}

	d := directives[0]
	if d.Method != "post" || d.Path != `"/b"` {
		t.Errorf("directive = {%s %s}, want {post \"/b\"}", d.Method, d.Path)
	}
	if len(d.Modifiers) != 1 || d.Modifiers[0].Option() != `module.Data("<x>")` {
		t.Errorf("modifiers = %+v, want module.Data(\"<x>\")", d.Modifiers)
	}
}

func TestScanFile_TabSeparatedErrorPosition(t *testing.T) {
	src := "package p\n\n//route:get\tbase\nfunc h() {}\n"

	_, err := routegen.ScanFile(token.NewFileSet(), "h.go", []byte(src))
	if err == nil {
		t.Fatal("ScanFile() error = nil")
	}
	if !strings.Contains(err.Error(), "h.go:3:13: route:get: first argument must be a string literal") {
		t.Errorf("error = %q, want position 3:13", err.Error())
	}
}

func TestModifier_Option(t *testing.T) {
	tests := []struct {
		key  string
		expr string
		want string
	}{
		{"rank", "1", "module.Rank(1)"},
		{"format", `"json"`, `module.Format("json")`},
		{"ärger", "x", "module.Ärger(x)"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := routegen.Modifier{Key: tt.key, Expr: tt.expr}
			if got := m.Option(); got != tt.want {
				t.Errorf("Option() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"identifier path",
			"package p\n\nconst base = \"/x\"\n\n//route:get base\nfunc h() {}\n",
			`h.go:5:13: route:get: first argument must be a string literal path such as "/path", got base`,
		},
		{
			"call path",
			"package p\n\n//route:post fmt.Sprint(\"/x\")\nfunc h() {}\n",
			`first argument must be a string literal path such as "/path", got fmt.Sprint("/x")`,
		},
		{
			"number path",
			"package p\n\n//route:get 42\nfunc h() {}\n",
			"got 42",
		},
		{
			"modifier first",
			"package p\n\n//route:get rank = 1\nfunc h() {}\n",
			"got rank = 1",
		},
		{
			"unknown method",
			"package p\n\n//route:head \"/a\"\nfunc h() {}\n",
			`h.go:3:1: unknown route method "head"`,
		},
		{
			"bare modifier",
			"package p\n\n//route:get \"/a\", 5\nfunc h() {}\n",
			"modifier must have the form key = expr, got 5",
		},
		{
			"invalid expression",
			"package p\n\n//route:get \"/a\", rank = 1 +\nfunc h() {}\n",
			"modifier rank: invalid expression",
		},
		{
			"trailing comma",
			"package p\n\n//route:get \"/a\",\nfunc h() {}\n",
			"trailing comma",
		},
		{
			"invalid pattern",
			"package p\n\n//route:get \"/users/{id\"\nfunc h() {}\n",
			"invalid route pattern",
		},
		{
			"method receiver",
			"package p\n\ntype T struct{}\n\n//route:get \"/a\"\nfunc (T) h() {}\n",
			"route directive on method h",
		},
		{
			"not a function",
			"package p\n\n//route:get \"/a\"\nvar h = 1\n",
			"h.go:3:1: route directive must precede a top-level function",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := routegen.ScanFile(token.NewFileSet(), "h.go", []byte(tt.src))
			if err == nil {
				t.Fatal("ScanFile() error = nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestScanFile_MultipleErrors(t *testing.T) {
	src := "package p\n\n//route:get a\nfunc h() {}\n\n//route:get b\nfunc g() {}\n"

	_, err := routegen.ScanFile(token.NewFileSet(), "h.go", []byte(src))
	if err == nil {
		t.Fatal("ScanFile() error = nil")
	}
	if !strings.Contains(err.Error(), "and 1 more error") {
		t.Errorf("error = %q, want both directives reported", err.Error())
	}
}

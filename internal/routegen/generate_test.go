package routegen_test

import (
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/autoroute/internal/routegen"
)

func TestGenerate(t *testing.T) {
	directives, err := routegen.ScanFile(token.NewFileSet(), "handlers.go", []byte(validSrc))
	if err != nil {
		t.Fatalf("ScanFile() error = %v", err)
	}

	src, err := routegen.Generate(routegen.DefaultOutput, "handlers", directives)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	out := string(src)

	if !strings.HasPrefix(out, routegen.Header+"\n") {
		t.Errorf("output does not start with the generated header:\n%s", out)
	}

	for _, want := range []string{
		"package handlers",
		`"github.com/JaimeStill/autoroute/pkg/module"`,
		`"github.com/JaimeStill/autoroute/pkg/routes"`,
		"func init() {",
		`routes.Get("/a", a)`,
		`routes.Post("/b", b, module.Data("<x>"))`,
		`routes.Route("/c", c)`,
		`routes.Get("/", index)`,
		`routes.Patch("/users/<id>", patchUser, module.Rank(2), module.Tags(strings.ToLower("Users")), module.Format("json"))`,
		`routes.Get("/one", twice)`,
		`routes.Get("/two", twice)`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Index(out, `"/a"`) > strings.Index(out, `"/b"`) {
		t.Error("declarations are not in source order")
	}
}

func TestGenerate_NoModifiers(t *testing.T) {
	src := "package p\n\nimport \"net/http\"\n\n//route:get \"/a\"\nfunc a(w http.ResponseWriter, r *http.Request) {}\n"

	directives, err := routegen.ScanFile(token.NewFileSet(), "p.go", []byte(src))
	if err != nil {
		t.Fatalf("ScanFile() error = %v", err)
	}

	out, err := routegen.Generate(routegen.DefaultOutput, "p", directives)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if strings.Contains(string(out), "pkg/module") {
		t.Errorf("unused module import kept:\n%s", out)
	}
}

func TestGenerate_MatchesDemo(t *testing.T) {
	demoSrc, err := os.ReadFile(filepath.Join("..", "demo", "demo.go"))
	if err != nil {
		t.Fatalf("read demo: %v", err)
	}
	golden, err := os.ReadFile(filepath.Join("..", "demo", routegen.DefaultOutput))
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}

	directives, err := routegen.ScanFile(token.NewFileSet(), "demo.go", demoSrc)
	if err != nil {
		t.Fatalf("ScanFile() error = %v", err)
	}

	out, err := routegen.Generate(routegen.DefaultOutput, "demo", directives)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if string(out) != string(golden) {
		t.Errorf("demo routes are stale; run go generate ./internal/demo\ngot:\n%s\nwant:\n%s", out, golden)
	}
}

func TestLoad_Demo(t *testing.T) {
	pkg, err := routegen.Load(filepath.Join("..", "demo"), routegen.DefaultOutput)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if pkg.Name != "demo" {
		t.Errorf("Name = %q, want %q", pkg.Name, "demo")
	}
	if n := len(pkg.Directives); n != 8 {
		t.Errorf("len(Directives) = %d, want 8", n)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	write("go.mod", "module example.com/svc\n\ngo 1.22\n")
	write("handlers.go", "package svc\n\nimport \"net/http\"\n\n//route:get \"/a\"\nfunc a(w http.ResponseWriter, r *http.Request) {}\n")

	n, err := routegen.Run(dir, "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Run() = %d, want 1", n)
	}

	out := filepath.Join(dir, routegen.DefaultOutput)
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `routes.Get("/a", a)`) {
		t.Errorf("output missing declaration:\n%s", data)
	}

	write("handlers.go", "package svc\n\nimport \"net/http\"\n\nfunc a(w http.ResponseWriter, r *http.Request) {}\n")

	if _, err := routegen.Run(dir, ""); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("stale output not removed: %v", err)
	}
}

func TestRun_DirectiveError(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/svc\n\ngo 1.22\n"), 0644)
	os.WriteFile(filepath.Join(dir, "handlers.go"), []byte("package svc\n\nvar p = \"/a\"\n\n//route:get p\nfunc a() {}\n"), 0644)

	if _, err := routegen.Run(dir, ""); err == nil {
		t.Fatal("Run() error = nil, want directive error")
	}
	if _, err := os.Stat(filepath.Join(dir, routegen.DefaultOutput)); !os.IsNotExist(err) {
		t.Error("output written despite directive error")
	}
}

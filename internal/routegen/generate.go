package routegen

import (
	"bytes"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"
)

// DefaultOutput is the file written into each package that has directives.
const DefaultOutput = "zz_routes_gen.go"

// Header marks generated files so that tools and reviewers skip them.
const Header = "// Code generated by routegen. DO NOT EDIT."

var fileTemplate = template.Must(template.New("routes").Parse(Header + `

package {{ .Package }}

import (
{{- if .Modifiers }}
	"github.com/JaimeStill/autoroute/pkg/module"
{{- end }}
	"github.com/JaimeStill/autoroute/pkg/routes"
)

func init() {
{{- range .Directives }}
	routes.{{ .Builder }}({{ .Path }}, {{ .Func }}{{ range .Modifiers }}, {{ .Option }}{{ end }})
{{- end }}
}
`))

// Generate renders the init function for directives in package pkg. The
// result is gofmt-formatted with unused imports removed.
func Generate(filename, pkg string, directives []Directive) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Package    string
		Directives []Directive
		Modifiers  bool
	}{pkg, directives, false}

	for _, d := range directives {
		if len(d.Modifiers) > 0 {
			data.Modifiers = true
		}
	}

	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", filename, err)
	}

	src, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", filename, err)
	}
	return src, nil
}

// Package is a loaded Go package and the directives found in its files.
type Package struct {
	Name       string
	Dir        string
	Directives []Directive
}

// Load resolves the package in dir and scans its non-test Go files, skipping
// output, in the order the build system lists them.
func Load(dir, output string) (*Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("load package: found %d packages in %s", len(pkgs), dir)
	}

	// Import errors are expected while the generated file references
	// packages the module has not resolved yet; only the file list matters.
	loaded := pkgs[0]
	if len(loaded.GoFiles) == 0 && len(loaded.Errors) > 0 {
		return nil, fmt.Errorf("load package: %v", loaded.Errors[0])
	}

	pkg := &Package{Name: loaded.Name, Dir: dir}
	fset := token.NewFileSet()

	for _, path := range loaded.GoFiles {
		if filepath.Base(path) == output {
			continue
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if isGenerated(src) {
			continue
		}

		directives, err := ScanFile(fset, path, src)
		if err != nil {
			return nil, err
		}
		pkg.Directives = append(pkg.Directives, directives...)
	}

	return pkg, nil
}

// Run loads the package in dir and writes output next to it. When the
// package has no directives, a stale output file is removed instead.
func Run(dir, output string) (int, error) {
	if output == "" {
		output = DefaultOutput
	}

	pkg, err := Load(dir, output)
	if err != nil {
		return 0, err
	}

	path := filepath.Join(dir, output)
	if len(pkg.Directives) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return 0, fmt.Errorf("remove %s: %w", path, err)
		}
		return 0, nil
	}

	src, err := Generate(output, pkg.Name, pkg.Directives)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(path, src, 0644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(pkg.Directives), nil
}

func isGenerated(src []byte) bool {
	line, _, _ := strings.Cut(string(src), "\n")
	return strings.HasPrefix(line, "// Code generated ") && strings.HasSuffix(strings.TrimSpace(line), " DO NOT EDIT.")
}

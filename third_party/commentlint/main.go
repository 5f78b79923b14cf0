// Package main checks that every function with a body carries a doc comment.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// pkgInfo is the subset of `go list -json` output the linter reads.
type pkgInfo struct {
	Dir          string   `json:"Dir"`
	GoFiles      []string `json:"GoFiles"`
	TestGoFiles  []string `json:"TestGoFiles"`
	XTestGoFiles []string `json:"XTestGoFiles"`
}

// finding is one missing doc comment.
type finding struct {
	pos token.Position
	msg string
}

// lintConfig mirrors the issues section of .golangci.yml.
type lintConfig struct {
	Issues struct {
		MaxIssuesPerLinter int      `yaml:"max-issues-per-linter"`
		ExcludeDirs        []string `yaml:"exclude-dirs"`
		ExcludeFiles       []string `yaml:"exclude-files"`
	} `yaml:"issues"`
}

// filter decides which files are skipped.
type filter struct {
	dirs  []string
	files []*regexp.Regexp
}

// main lints the packages named on the command line.
func main() {
	skipTests := flag.Bool("skip-tests", false, "Do not lint _test.go files")
	configPath := flag.String("config", ".golangci.yml", "Config file providing issues.exclude-dirs and exclude-files")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [packages]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "Reports functions without a doc comment. Defaults to ./...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	os.Exit(run(os.Stderr, patterns, *configPath, *skipTests))
}

// run lints the packages and prints findings, returning the exit code.
func run(w io.Writer, patterns []string, configPath string, skipTests bool) int {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(w, "commentlint: %v\n", err)
		return 2
	}
	flt, err := newFilter(cfg)
	if err != nil {
		fmt.Fprintf(w, "commentlint: %v\n", err)
		return 2
	}
	pkgs, err := listPackages(patterns)
	if err != nil {
		fmt.Fprintf(w, "commentlint: %v\n", err)
		return 2
	}

	fset := token.NewFileSet()
	var findings []finding
	for _, pkg := range pkgs {
		files := append([]string{}, pkg.GoFiles...)
		if !skipTests {
			files = append(files, pkg.TestGoFiles...)
			files = append(files, pkg.XTestGoFiles...)
		}
		for _, file := range files {
			filename := filepath.Join(pkg.Dir, file)
			if flt.skip(filepath.ToSlash(relativePath(filename))) {
				continue
			}
			src, err := os.ReadFile(filename)
			if err != nil {
				fmt.Fprintf(w, "commentlint: %v\n", err)
				return 2
			}
			found, err := lintSource(fset, filename, src)
			if err != nil {
				fmt.Fprintf(w, "commentlint: %v\n", err)
				return 2
			}
			findings = append(findings, found...)
		}
	}
	return report(w, findings, cfg.Issues.MaxIssuesPerLinter)
}

// report prints findings sorted by position and returns 1 when any exist.
func report(w io.Writer, findings []finding, limit int) int {
	if len(findings) == 0 {
		return 0
	}
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i].pos, findings[j].pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Line < b.Line
	})
	shown := findings
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, f := range shown {
		fmt.Fprintf(w, "%s:%d:%d: %s\n", relativePath(f.pos.Filename), f.pos.Line, f.pos.Column, f.msg)
	}
	if len(shown) < len(findings) {
		fmt.Fprintf(w, "commentlint: %d more issues hidden by max-issues-per-linter\n", len(findings)-len(shown))
	}
	return 1
}

// lintSource parses one file and reports functions without doc comments.
// Generated files produce no findings.
func lintSource(fset *token.FileSet, filename string, src []byte) ([]finding, error) {
	if isGenerated(src) {
		return nil, nil
	}
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	var out []finding
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		if fn.Doc != nil && strings.TrimSpace(fn.Doc.Text()) != "" {
			continue
		}
		out = append(out, finding{
			pos: fset.Position(fn.Pos()),
			msg: fmt.Sprintf("missing doc comment for function %q", funcName(fn)),
		})
	}
	return out, nil
}

// funcName returns Recv.Name for methods and Name for functions.
func funcName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}
	typ := fn.Recv.List[0].Type
	if star, ok := typ.(*ast.StarExpr); ok {
		typ = star.X
	}
	if idx, ok := typ.(*ast.IndexExpr); ok {
		typ = idx.X
	}
	if ident, ok := typ.(*ast.Ident); ok {
		return ident.Name + "." + fn.Name.Name
	}
	return fn.Name.Name
}

// loadConfig reads the linter config. A missing file yields defaults.
func loadConfig(path string) (lintConfig, error) {
	var cfg lintConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// newFilter compiles the exclusion lists of cfg.
func newFilter(cfg lintConfig) (filter, error) {
	var flt filter
	for _, d := range cfg.Issues.ExcludeDirs {
		d = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(d), "./"), "/")
		if d != "" {
			flt.dirs = append(flt.dirs, filepath.ToSlash(d))
		}
	}
	for _, p := range cfg.Issues.ExcludeFiles {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		rx, err := regexp.Compile(p)
		if err != nil {
			return filter{}, fmt.Errorf("invalid exclude regex %q: %w", p, err)
		}
		flt.files = append(flt.files, rx)
	}
	return flt, nil
}

// skip reports whether the slash-separated relative path is excluded.
func (f filter) skip(rel string) bool {
	for _, d := range f.dirs {
		if rel == d || strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	for _, rx := range f.files {
		if rx.MatchString(rel) {
			return true
		}
	}
	return false
}

// listPackages runs `go list -json` for the patterns.
func listPackages(patterns []string) ([]pkgInfo, error) {
	var stdout bytes.Buffer
	cmd := exec.Command("go", append([]string{"list", "-json"}, patterns...)...)
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("go list: %w", err)
	}
	return decodePackages(&stdout)
}

// decodePackages reads the concatenated JSON objects printed by go list.
func decodePackages(r io.Reader) ([]pkgInfo, error) {
	dec := json.NewDecoder(bufio.NewReader(r))
	var pkgs []pkgInfo
	for dec.More() {
		var info pkgInfo
		if err := dec.Decode(&info); err != nil {
			return nil, err
		}
		pkgs = append(pkgs, info)
	}
	return pkgs, nil
}

// isGenerated reports whether the first lines carry a generated-code marker.
func isGenerated(src []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(src))
	for i := 0; i < 10 && scanner.Scan(); i++ {
		line := scanner.Text()
		if strings.Contains(line, "Code generated") || strings.Contains(line, "DO NOT EDIT") {
			return true
		}
	}
	return false
}

// relativePath returns path relative to the working directory when possible.
func relativePath(path string) string {
	if rel, err := filepath.Rel(".", path); err == nil {
		return rel
	}
	return path
}

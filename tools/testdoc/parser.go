package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// TestFunc is one documented test.
type TestFunc struct {
	Name string
	Doc  string
	Line int
	// IsTable is set when the test runs subtests from a range loop.
	IsTable bool
}

// TestFile holds the tests found in one _test.go file.
type TestFile struct {
	Name  string
	Path  string
	Tests []TestFunc
}

// TestPackage groups test files by directory, relative to the walk root.
type TestPackage struct {
	Name       string
	Files      []TestFile
	TotalTests int
}

// ParseTestFiles walks the directory tree and parses all *_test.go files.
// Packages whose path relative to root does not start with prefix are
// skipped. Underscore-prefixed, hidden and vendor directories are never
// entered.
func ParseTestFiles(root, prefix string) ([]TestPackage, error) {
	packageMap := make(map[string]*TestPackage)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}

		pkgPath, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		pkgPath = filepath.ToSlash(pkgPath)
		if pkgPath == "." {
			pkgPath = filepath.Base(root)
		}
		if !strings.HasPrefix(pkgPath, prefix) {
			return nil
		}

		testFile, err := parseTestFile(path)
		if err != nil {
			return err
		}
		if len(testFile.Tests) == 0 {
			return nil
		}

		pkg, ok := packageMap[pkgPath]
		if !ok {
			pkg = &TestPackage{Name: pkgPath}
			packageMap[pkgPath] = pkg
		}
		pkg.Files = append(pkg.Files, *testFile)
		pkg.TotalTests += len(testFile.Tests)
		return nil
	})
	if err != nil {
		return nil, err
	}

	packages := make([]TestPackage, 0, len(packageMap))
	for _, pkg := range packageMap {
		slices.SortFunc(pkg.Files, func(a, b TestFile) int {
			return strings.Compare(a.Name, b.Name)
		})
		packages = append(packages, *pkg)
	}
	slices.SortFunc(packages, func(a, b TestPackage) int {
		return strings.Compare(a.Name, b.Name)
	})

	return packages, nil
}

// parseTestFile returns the Test and Benchmark functions declared in path.
func parseTestFile(path string) (*TestFile, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	tf := &TestFile{Name: filepath.Base(path), Path: path}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !strings.HasPrefix(fn.Name.Name, "Test") || !takesTestingArg(fn) {
			continue
		}
		tf.Tests = append(tf.Tests, TestFunc{
			Name:    fn.Name.Name,
			Doc:     strings.TrimSpace(fn.Doc.Text()),
			Line:    fset.Position(fn.Pos()).Line,
			IsTable: runsSubtestsInLoop(fn.Body),
		})
	}
	return tf, nil
}

// takesTestingArg reports whether fn has the single parameter *testing.T or
// *testing.B.
func takesTestingArg(fn *ast.FuncDecl) bool {
	params := fn.Type.Params.List
	if len(params) != 1 {
		return false
	}
	star, ok := params[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "testing" && (sel.Sel.Name == "T" || sel.Sel.Name == "B")
}

// runsSubtestsInLoop reports whether body calls a Run method inside a range
// loop, the shape of a table-driven test.
func runsSubtestsInLoop(body *ast.BlockStmt) bool {
	if body == nil {
		return false
	}
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		if found {
			return false
		}
		if loop, ok := n.(*ast.RangeStmt); ok {
			found = callsRun(loop.Body)
		}
		return !found
	})
	return found
}

func callsRun(n ast.Node) bool {
	found := false
	ast.Inspect(n, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok {
			if sel, ok := call.Fun.(*ast.SelectorExpr); ok && sel.Sel.Name == "Run" {
				found = true
			}
		}
		return !found
	})
	return found
}

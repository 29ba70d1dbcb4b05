// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package memdb

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/tyck/types"
)

// File is the YAML form of a set of declarations.
//
//	items:
//	  - name: Vec
//	    kind: struct
//	    generics: [T]
//	    fields:
//	      - {name: len, type: uint}
//	    methods:
//	      - {name: push, params: [T], output: "()"}
//	  - name: make
//	    kind: function
//	    generics: [T]
//	    output: T
type File struct {
	Items []ItemDecl `yaml:"items"`
}

// ItemDecl declares a struct or function.
type ItemDecl struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"`
	Generics []string `yaml:"generics,omitempty"`

	// Structs only.
	Fields  []FieldDecl  `yaml:"fields,omitempty"`
	Methods []MethodDecl `yaml:"methods,omitempty"`

	// Functions only. A missing output is unit.
	Params []string `yaml:"params,omitempty"`
	Output string   `yaml:"output,omitempty"`
}

// FieldDecl declares a field.
type FieldDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// MethodDecl declares a method. The receiver is implicit and is not listed in Params.
type MethodDecl struct {
	Name     string   `yaml:"name"`
	Generics []string `yaml:"generics,omitempty"`
	Params   []string `yaml:"params,omitempty"`
	Output   string   `yaml:"output,omitempty"`
}

// Item kinds accepted in YAML.
const (
	KindStruct   = "struct"
	KindFunction = "function"
)

// LoadFile reads declarations from a YAML file.
func LoadFile(path string) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declarations: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// Load reads declarations from YAML. Unknown fields are rejected.
func Load(r io.Reader) (*DB, error) {
	var file File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	db := New()
	if err := db.Declare(&file); err != nil {
		return nil, fmt.Errorf("invalid declarations: %w", err)
	}
	return db, nil
}

// Declare adds the declarations of file. Structs are declared first so that any type may refer to
// any struct of the file.
func (db *DB) Declare(file *File) error {
	if dups := lo.FindDuplicates(lo.Map(file.Items, func(it ItemDecl, _ int) string { return it.Name })); len(dups) > 0 {
		return fmt.Errorf("duplicate items: %s", strings.Join(dups, ", "))
	}
	for _, it := range file.Items {
		if err := validateItem(it); err != nil {
			return err
		}
		if _, ok := db.items[it.Name]; ok {
			return fmt.Errorf("item %s is already declared", it.Name)
		}
		if it.Kind == KindStruct {
			db.Struct(it.Name, it.Generics...)
		}
	}

	for _, it := range file.Items {
		switch it.Kind {
		case KindStruct:
			owner := db.items[it.Name]
			selfTy, _ := db.tyOf(owner)
			for _, f := range it.Fields {
				ty, err := db.ParseType(f.Type, it.Generics)
				if err != nil {
					return fmt.Errorf("field %s.%s: %w", it.Name, f.Name, err)
				}
				db.Field(owner, f.Name, ty)
			}
			for _, m := range it.Methods {
				scope := append(append([]string(nil), it.Generics...), m.Generics...)
				sig, err := db.parseSig(m.Params, m.Output, scope)
				if err != nil {
					return fmt.Errorf("method %s.%s: %w", it.Name, m.Name, err)
				}
				sig.Inputs = append([]types.Ty[types.Declaration]{selfTy}, sig.Inputs...)
				db.Method(owner, m.Name, m.Generics, sig)
			}

		case KindFunction:
			sig, err := db.parseSig(it.Params, it.Output, it.Generics)
			if err != nil {
				return fmt.Errorf("function %s: %w", it.Name, err)
			}
			db.Function(it.Name, it.Generics, sig)
		}
	}
	return nil
}

func validateItem(it ItemDecl) error {
	if it.Name == "" {
		return fmt.Errorf("item name is required")
	}
	if dups := lo.FindDuplicates(it.Generics); len(dups) > 0 {
		return fmt.Errorf("item %s: duplicate generics: %s", it.Name, strings.Join(dups, ", "))
	}
	switch it.Kind {
	case KindStruct:
		if len(it.Params) > 0 || it.Output != "" {
			return fmt.Errorf("struct %s: params and output are only allowed on functions", it.Name)
		}
	case KindFunction:
		if len(it.Fields) > 0 || len(it.Methods) > 0 {
			return fmt.Errorf("function %s: fields and methods are only allowed on structs", it.Name)
		}
	default:
		return fmt.Errorf("item %s: unknown kind %q", it.Name, it.Kind)
	}
	return nil
}

func (db *DB) tyOf(e types.Entity) (types.Ty[types.Declaration], bool) {
	d, ok := db.decls[e]
	if !ok || d.ty == nil {
		return types.Ty[types.Declaration]{}, false
	}
	return *d.ty, true
}

func (db *DB) parseSig(params []string, output string, scope []string) (types.Signature[types.Declaration], error) {
	var sig types.Signature[types.Declaration]
	for _, p := range params {
		ty, err := db.ParseType(p, scope)
		if err != nil {
			return sig, err
		}
		sig.Inputs = append(sig.Inputs, ty)
	}
	if output == "" {
		output = "()"
	}
	ty, err := db.ParseType(output, scope)
	if err != nil {
		return sig, err
	}
	sig.Output = ty
	return sig, nil
}

var langItems = map[string]types.LangItem{
	"bool":   types.Boolean,
	"int":    types.Int,
	"uint":   types.Uint,
	"String": types.String,
	"()":     types.Unit,
}

// ParseType parses a declared type such as `Vec<T>`. Names in scope refer to generic parameters;
// other names refer to lang items or declared structs.
func (db *DB) ParseType(src string, scope []string) (types.Ty[types.Declaration], error) {
	p := &typeParser{db: db, src: src, scope: scope}
	ty, err := p.parse()
	if err != nil {
		return ty, err
	}
	if p.skipSpace(); p.pos < len(p.src) {
		return ty, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return ty, nil
}

type typeParser struct {
	db    *DB
	src   string
	pos   int
	scope []string
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("type %q at %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) accept(s string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) parse() (types.Ty[types.Declaration], error) {
	var zero types.Ty[types.Declaration]
	if p.accept("()") {
		return p.db.Prim(types.Unit), nil
	}
	name := p.ident()
	if name == "" {
		return zero, p.errorf("expected a type name")
	}
	if i := lo.IndexOf(p.scope, name); i >= 0 {
		return p.db.Bound(i), nil
	}
	if item, ok := langItems[name]; ok {
		return p.db.Prim(item), nil
	}
	e, ok := p.db.items[name]
	if !ok || p.db.entities.Lookup(e).ItemKind != types.Struct {
		return zero, p.errorf("unknown type %s", name)
	}
	var generics []types.Ty[types.Declaration]
	if p.accept("<") {
		for {
			g, err := p.parse()
			if err != nil {
				return zero, err
			}
			generics = append(generics, g)
			if p.accept(">") {
				break
			}
			if !p.accept(",") {
				return zero, p.errorf("expected , or >")
			}
		}
	}
	if want := len(p.db.decls[e].generics.Names); want != len(generics) {
		return zero, p.errorf("%s expects %d generic arguments, got %d", name, want, len(generics))
	}
	return p.db.Named(e, generics...), nil
}

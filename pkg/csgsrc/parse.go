package csgsrc

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/lignin/pkg/csg"
	"github.com/chazu/lignin/pkg/voxel"
)

// ParseResult reports whether a source document parsed successfully. The
// core never sees a failed parse; it only ever receives a built Scene.
type ParseResult struct {
	OK    bool
	Error string
}

type parser struct {
	tokens []token
	pos    int
	source string

	scene     *csg.Scene
	objects   map[string]csg.NodeID
	materials map[string]uint32
	nextMat   uint32
}

// parseError aborts parsing; it is recovered by Parse and turned into a
// ParseResult.
type parseError struct {
	line    int
	message string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.message)
}

// Parse compiles source into a Scene. On success it returns the scene and
// ParseResult{OK: true}; on failure it returns a nil scene and
// ParseResult{OK: false, Error: ...} describing the first problem found.
// Parsing never panics outward: internal precondition violations in the
// grammar itself are caught and reported the same way a syntax error is.
func Parse(source string) (*csg.Scene, ParseResult) {
	tokens, err := lex(source)
	if err != nil {
		return nil, ParseResult{OK: false, Error: err.Error()}
	}

	p := &parser{
		tokens:    tokens,
		scene:     csg.New(),
		objects:   make(map[string]csg.NodeID),
		materials: make(map[string]uint32),
		nextMat:   voxel.Void + 1,
		source:    source,
	}

	result := p.run()
	if !result.OK {
		return nil, result
	}
	return p.scene, result
}

func (p *parser) run() (result ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*parseError); ok {
				result = ParseResult{OK: false, Error: pe.Error()}
				return
			}
			result = ParseResult{OK: false, Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	for p.peek().kind != tokEOF {
		p.statement()
	}

	if len(p.scene.Tops) == 0 {
		p.fail(p.peek().line, "no build statement: scene has no top-level objects")
	}

	return ParseResult{OK: true}
}

func (p *parser) fail(line int, format string, args ...interface{}) {
	panic(&parseError{line: line, message: fmt.Sprintf(format, args...)})
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) advance() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) token {
	t := p.peek()
	if t.kind != kind {
		p.fail(t.line, "expected %s, found %q", what, tokenText(t))
	}
	return p.advance()
}

func (p *parser) expectIdent(ident string) token {
	t := p.peek()
	if t.kind != tokIdent || t.text != ident {
		p.fail(t.line, "expected %q, found %q", ident, tokenText(t))
	}
	return p.advance()
}

func tokenText(t token) string {
	switch t.kind {
	case tokIdent:
		return t.text
	case tokNumber:
		return t.text
	case tokEOF:
		return "end of input"
	default:
		return string(t.kind.symbol())
	}
}

func (k tokenKind) symbol() rune {
	switch k {
	case tokLParen:
		return '('
	case tokRParen:
		return ')'
	case tokLBrace:
		return '{'
	case tokRBrace:
		return '}'
	case tokComma:
		return ','
	case tokEquals:
		return '='
	case tokSemicolon:
		return ';'
	default:
		return '?'
	}
}

// statement parses one of the three top-level statement forms.
func (p *parser) statement() {
	t := p.peek()
	if t.kind != tokIdent {
		p.fail(t.line, "expected a statement, found %q", tokenText(t))
	}

	switch t.text {
	case "material":
		p.materialStatement()
	case "object":
		p.objectStatement()
	case "build":
		p.buildStatement()
	default:
		p.fail(t.line, "unknown statement %q", t.text)
	}
}

func (p *parser) materialStatement() {
	p.expectIdent("material")
	name := p.expect(tokIdent, "material name").text
	p.expect(tokSemicolon, "';'")

	if _, exists := p.materials[name]; exists {
		p.fail(p.tokens[p.pos-1].line, "material %q declared twice", name)
	}
	p.materials[name] = p.nextMat
	p.nextMat++
}

func (p *parser) objectStatement() {
	p.expectIdent("object")
	nameTok := p.expect(tokIdent, "object name")
	p.expect(tokEquals, "'='")
	id := p.expression()
	p.expect(tokSemicolon, "';'")

	if _, exists := p.objects[nameTok.text]; exists {
		p.fail(nameTok.line, "object %q declared twice", nameTok.text)
	}
	p.objects[nameTok.text] = id
}

func (p *parser) buildStatement() {
	p.expectIdent("build")
	objTok := p.expect(tokIdent, "object identifier")
	matTok := p.expect(tokIdent, "material identifier")
	p.expect(tokSemicolon, "';'")

	id, ok := p.objects[objTok.text]
	if !ok {
		p.fail(objTok.line, "undefined object %q", objTok.text)
	}
	material, ok := p.materials[matTok.text]
	if !ok {
		p.fail(matTok.line, "undefined material %q", matTok.text)
	}
	p.scene.Build(id, material)
}

// expression parses one CSG expression: an identifier reference or a call
// of the form name(args...).
func (p *parser) expression() csg.NodeID {
	t := p.peek()
	if t.kind != tokIdent {
		p.fail(t.line, "expected an expression, found %q", tokenText(t))
	}

	if p.tokens[p.pos+1].kind != tokLParen {
		p.advance()
		id, ok := p.objects[t.text]
		if !ok {
			p.fail(t.line, "undefined object %q", t.text)
		}
		return id
	}

	p.advance()
	p.expect(tokLParen, "'('")
	id := p.call(t.text, t.line)
	p.expect(tokRParen, "')'")
	return id
}

func (p *parser) call(name string, line int) csg.NodeID {
	switch name {
	case "sphere":
		return p.scene.Sphere(p.number())
	case "cube":
		return p.scene.Cube(p.number())
	case "unite":
		a := p.expression()
		p.expect(tokComma, "','")
		b := p.expression()
		return p.scene.Union(a, b)
	case "intersect":
		a := p.expression()
		p.expect(tokComma, "','")
		b := p.expression()
		return p.scene.Intersection(a, b)
	case "subtract":
		a := p.expression()
		p.expect(tokComma, "','")
		b := p.expression()
		return p.scene.Difference(a, b)
	case "scale":
		return p.scaleCall()
	case "xscale":
		f := p.number()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.Scale(e, f, 1, 1)
	case "yscale":
		f := p.number()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.Scale(e, 1, f, 1)
	case "zscale":
		f := p.number()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.Scale(e, 1, 1, f)
	case "xrotate":
		f := p.number()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.Rotate(e, f, 0, 0)
	case "yrotate":
		f := p.number()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.Rotate(e, 0, f, 0)
	case "zrotate":
		f := p.number()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.Rotate(e, 0, 0, f)
	case "xtranslate":
		f := p.number()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.Translate(e, f, 0, 0)
	case "ytranslate":
		f := p.number()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.Translate(e, 0, f, 0)
	case "ztranslate":
		f := p.number()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.Translate(e, 0, 0, f)
	case "rotate":
		angle := p.number()
		p.expect(tokComma, "','")
		ax, ay, az := p.vector()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.RotateAxis(e, angle, v3.Vec{X: ax, Y: ay, Z: az})
	case "translate":
		tx, ty, tz := p.vector()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.Translate(e, tx, ty, tz)
	default:
		p.fail(line, "unknown function %q", name)
		panic("unreachable")
	}
}

// scaleCall handles the two scale forms: scale(f,e) and scale({fx,fy,fz},e).
func (p *parser) scaleCall() csg.NodeID {
	if p.peek().kind == tokLBrace {
		x, y, z := p.vector()
		p.expect(tokComma, "','")
		e := p.expression()
		return p.scene.Scale(e, x, y, z)
	}
	f := p.number()
	p.expect(tokComma, "','")
	e := p.expression()
	return p.scene.Scale(e, f, f, f)
}

func (p *parser) number() float64 {
	t := p.expect(tokNumber, "a number")
	return t.num
}

// vector parses a {x,y,z} literal.
func (p *parser) vector() (x, y, z float64) {
	p.expect(tokLBrace, "'{'")
	x = p.number()
	p.expect(tokComma, "','")
	y = p.number()
	p.expect(tokComma, "','")
	z = p.number()
	p.expect(tokRBrace, "'}'")
	return x, y, z
}

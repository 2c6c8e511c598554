// dsl/parser.go

// Package dsl parses and lowers .platen documents. A document is an
// optional meta block followed by one or more pages; pages hold nested
// boxes, grids and draw statements. Parse produces the raw syntax tree,
// Build turns it into layout elements and render items.
//
// Comments use // and /* */ forms. Statements end at a newline or ';'.
package dsl

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	platenLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		// Longest hex alternatives first: Go regexp alternation is
		// leftmost-first, not longest-match.
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{4}|[0-9A-Fa-f]{3})`},
		{Name: "RGBFunc", Pattern: `rgba?\([^)\n]*\)`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+|\.\d+)(?:px|in|mm|pt|%)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}:;,]`},
	})

	// Two tokens of lookahead let a blockless box back out of the optional
	// block branch after peeking past the newline.
	documentParser = participle.MustBuild[Document](
		participle.Lexer(platenLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
		participle.UseLookahead(2),
	)
)

// Document is the root syntax node of a .platen file.
type Document struct {
	Pos   lexer.Position `parser:""`
	Meta  *MetaNode      `parser:"Newline* ( @@ Newline* )?"`
	Pages []*PageNode    `parser:"( @@ Newline* )+"`
}

// MetaNode carries document information entries such as title and author.
type MetaNode struct {
	Entries []*MetaEntry `parser:"'meta' '{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// MetaEntry is one colon assignment inside a meta block.
type MetaEntry struct {
	Pos   lexer.Position `parser:""`
	Key   string         `parser:"@Ident ':'"`
	Value StringLiteral  `parser:"@String"`
}

// PageNode declares one output page: width, height, an optional density
// and the body block.
type PageNode struct {
	Pos    lexer.Position `parser:""`
	Width  string         `parser:"'page' @Number"`
	Height string         `parser:"@Number"`
	DPI    *float64       `parser:"( 'dpi' @Number )?"`
	Block  *Block         `parser:"Newline* @@"`
}

// Block is a brace-delimited statement list.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement is one layout or draw instruction. Exactly one branch is set.
type Statement struct {
	Pad   *PadNode   `parser:"  @@"`
	Box   *BoxNode   `parser:"| @@"`
	Grid  *GridNode  `parser:"| @@"`
	Text  *TextNode  `parser:"| @@"`
	Rect  *RectNode  `parser:"| @@"`
	Line  *LineNode  `parser:"| @@"`
	Image *ImageNode `parser:"| @@"`
}

// PadNode sets the enclosing element's padding: one uniform length or
// left, top, right, bottom.
type PadNode struct {
	Pos    lexer.Position `parser:""`
	Values []string       `parser:"'pad' @Number ( @Number @Number @Number )?"`
}

// BoxNode declares a child element. A box without a block is an empty
// placeholder, useful as a rule or spacer target.
type BoxNode struct {
	Pos   lexer.Position `parser:""`
	Attrs []*BoxAttr     `parser:"'box' @@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// BoxAttr is one box property. Attributes may repeat; the last one wins.
type BoxAttr struct {
	Pos    lexer.Position `parser:""`
	At     *string        `parser:"  'at' @Ident"`
	Fill   bool           `parser:"| @'fill'"`
	Size   *PairNode      `parser:"| 'size' @@"`
	Margin *InsetNode     `parser:"| 'margin' @@"`
	DPI    *float64       `parser:"| 'dpi' @Number"`
}

// PairNode is two consecutive numeric literals.
type PairNode struct {
	First  string `parser:"@Number"`
	Second string `parser:"@Number"`
}

// InsetNode is one or four numeric literals.
type InsetNode struct {
	Values []string `parser:"@Number ( @Number @Number @Number )?"`
}

// GridNode declares an equally divided grid. The container takes box
// attributes; cells and spans address its subdivisions.
type GridNode struct {
	Pos     lexer.Position `parser:""`
	Rows    int            `parser:"'grid' @Number"`
	Columns int            `parser:"@Number"`
	Attrs   []*BoxAttr     `parser:"@@*"`
	Block   *GridBlock     `parser:"Newline* @@"`
}

// GridBlock holds the cell and span entries of a grid.
type GridBlock struct {
	Entries []*GridEntry `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// GridEntry is either a single cell or a spanned block.
type GridEntry struct {
	Cell *CellNode `parser:"  @@"`
	Span *SpanNode `parser:"| @@"`
}

// CellNode fills one grid cell with content.
type CellNode struct {
	Pos   lexer.Position `parser:""`
	Row   int            `parser:"'cell' @Number"`
	Col   int            `parser:"@Number"`
	Block *Block         `parser:"Newline* @@"`
}

// SpanNode fills a rowSpan x colSpan block of cells with content.
type SpanNode struct {
	Pos     lexer.Position `parser:""`
	Row     int            `parser:"'span' @Number"`
	Col     int            `parser:"@Number"`
	RowSpan int            `parser:"@Number"`
	ColSpan int            `parser:"@Number"`
	Block   *Block         `parser:"Newline* @@"`
}

// TextNode draws a single line of text in the enclosing element.
type TextNode struct {
	Pos     lexer.Position `parser:""`
	Content StringLiteral  `parser:"'text' @String"`
	Attrs   []*TextAttr    `parser:"@@*"`
}

// TextAttr is one text property.
type TextAttr struct {
	Pos    lexer.Position `parser:""`
	Font   *FontNode      `parser:"  @@"`
	Style  *string        `parser:"| @('bold' | 'light' | 'medium' | 'semibold' | 'extrabold' | 'black' | 'italic' | 'underline' | 'strikethrough' | 'overline')"`
	Color  *string        `parser:"| 'color' @(Color | RGBFunc | Ident)"`
	Anchor *string        `parser:"| 'anchor' @Ident"`
	Fit    *FitNode       `parser:"| @@"`
}

// FontNode selects a family and optionally a point size.
type FontNode struct {
	Family StringLiteral `parser:"'font' @String"`
	Size   *string       `parser:"( @Number )?"`
}

// FitNode enables fit-to-region sizing, optionally bounding the search.
type FitNode struct {
	Fit   bool      `parser:"@'fit'"`
	Range *PairNode `parser:"( @@ )?"`
}

// RectNode paints and/or outlines the enclosing element's region.
type RectNode struct {
	Pos   lexer.Position `parser:""`
	Attrs []*RectAttr    `parser:"'rect' @@*"`
}

// RectAttr is a fill color or a stroke.
type RectAttr struct {
	Pos    lexer.Position `parser:""`
	Fill   *string     `parser:"  'fill' @(Color | RGBFunc | Ident)"`
	Stroke *StrokeNode `parser:"| @@"`
}

// StrokeNode is a stroke color with an optional pixel width.
type StrokeNode struct {
	Color string  `parser:"'stroke' @(Color | RGBFunc | Ident)"`
	Width *string `parser:"( @Number )?"`
}

// LineNode draws a segment between two anchor points of the enclosing
// element's region.
type LineNode struct {
	Pos   lexer.Position `parser:""`
	From  string         `parser:"'line' @Ident"`
	To    string         `parser:"@Ident"`
	Attrs []*LineAttr    `parser:"@@*"`
}

// LineAttr is a line color or width.
type LineAttr struct {
	Pos   lexer.Position `parser:""`
	Color *string        `parser:"  'color' @(Color | RGBFunc | Ident)"`
	Width *string        `parser:"| 'width' @Number"`
}

// ImageNode draws an image scaled into the enclosing element's region.
type ImageNode struct {
	Pos   lexer.Position `parser:""`
	Path  StringLiteral  `parser:"'image' @String"`
	Attrs []*ImageAttr   `parser:"@@*"`
}

// ImageAttr is a scale mode or an anchor.
type ImageAttr struct {
	Pos    lexer.Position `parser:""`
	Mode   *string        `parser:"  @('fit' | 'cover' | 'stretch')"`
	Anchor *string        `parser:"| 'anchor' @Ident"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires a value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse reads a document from r. The name is used in error positions.
func Parse(name string, r io.Reader) (*Document, error) {
	return documentParser.Parse(name, r)
}

// ParseString parses a document held in a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// ParseFile reads and parses a .platen file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return documentParser.ParseString(path, string(data))
}

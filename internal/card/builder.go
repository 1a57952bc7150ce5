package card

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultLanguage = "zh"

// Builder accumulates body blocks in insertion order and tracks at most one
// open column set. Misuse is recorded as a StateError at the offending call;
// once recorded, later mutations are no-ops and Build returns the error.
type Builder struct {
	language    string
	header      Block
	elements    []Block
	columns     []Block
	columnsOpen bool
	err         *StateError
}

// BuilderOption configures a new Builder.
type BuilderOption func(*Builder)

// WithLanguage sets the card language tag. Tags that fail BCP 47 parsing are
// ignored and the default ("zh") is kept.
func WithLanguage(tag string) BuilderOption {
	return func(b *Builder) {
		if parsed, err := language.Parse(strings.TrimSpace(tag)); err == nil {
			b.language = parsed.String()
		}
	}
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{language: defaultLanguage}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Language returns the builder's language tag.
func (b *Builder) Language() string {
	return b.language
}

// Header sets the card header. The color resolves from WithColor when given,
// otherwise from WithStatus via the status table. Callable multiple times;
// the last call wins. Does not touch column-set state.
func (b *Builder) Header(title string, opts ...HeaderOption) *Builder {
	if b.err != nil {
		return b
	}
	o := headerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	template := o.color
	if template == "" {
		template = TemplateForStatus(o.status)
	}
	b.header = Header(title, template, opts...)
	return b
}

// Metadata appends one key/value display line to the body.
func (b *Builder) Metadata(key string, value any) *Builder {
	return b.appendBlock("Metadata", Markdown(fmt.Sprintf("**%s:** %v", key, value)))
}

// Field is one labeled value inside a MetadataBlock. Fields render in slice
// order.
type Field struct {
	Key   string
	Value any
}

// MetadataBlock appends a single block combining multiple key/value lines.
// Keys are title-cased for display ("task_name" renders as "Task Name").
func (b *Builder) MetadataBlock(fields ...Field) *Builder {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("**%s:** %v", fieldLabel(f.Key), f.Value))
	}
	return b.appendBlock("MetadataBlock", Markdown(strings.Join(lines, "\n")))
}

func fieldLabel(key string) string {
	label := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(key))
	return cases.Title(language.Und).String(label)
}

// Markdown appends a markdown block.
func (b *Builder) Markdown(text string, opts ...MarkdownOption) *Builder {
	return b.appendBlock("Markdown", Markdown(text, opts...))
}

// Divider appends a horizontal separator.
func (b *Builder) Divider() *Builder {
	return b.appendBlock("Divider", Divider())
}

// Columns opens a new column-set context. The previous one must be closed
// with EndColumns first.
func (b *Builder) Columns() *Builder {
	if b.err != nil {
		return b
	}
	if b.columnsOpen {
		b.err = &StateError{Op: "Columns", Reason: "unclosed column context"}
		return b
	}
	b.columnsOpen = true
	b.columns = nil
	return b
}

// Column appends one titled column to the open column set.
func (b *Builder) Column(title string, value any, opts ...ColumnOption) *Builder {
	if b.err != nil {
		return b
	}
	if !b.columnsOpen {
		b.err = &StateError{Op: "Column", Reason: "call Columns before Column"}
		return b
	}
	o := columnOptions{width: WidthAuto}
	for _, opt := range opts {
		opt(&o)
	}
	if o.width == WidthWeighted && !o.hasWeight {
		opts = append(opts, WithWeight(1))
	}
	content := Markdown(fmt.Sprintf("**%s**\n%v", title, value))
	b.columns = append(b.columns, Column([]Block{content}, opts...))
	return b
}

// EndColumns closes the open column set and appends it to the body.
func (b *Builder) EndColumns() *Builder {
	if b.err != nil {
		return b
	}
	if !b.columnsOpen {
		b.err = &StateError{Op: "EndColumns", Reason: "no column context to end"}
		return b
	}
	b.elements = append(b.elements, ColumnSet(b.columns))
	b.columns = nil
	b.columnsOpen = false
	return b
}

// Collapsible appends a collapsible panel holding one markdown content block.
func (b *Builder) Collapsible(title, content string, expanded bool) *Builder {
	panel := CollapsiblePanel("**"+title+"**", []Block{Markdown(content)}, expanded)
	return b.appendBlock("Collapsible", panel)
}

// AddBlock appends a pre-constructed block verbatim.
func (b *Builder) AddBlock(block Block) *Builder {
	return b.appendBlock("AddBlock", block)
}

func (b *Builder) appendBlock(op string, block Block) *Builder {
	if b.err != nil {
		return b
	}
	if b.columnsOpen {
		b.err = &StateError{Op: op, Reason: "column context open; call EndColumns first"}
		return b
	}
	b.elements = append(b.elements, block)
	return b
}

// Err returns the first recorded misuse, if any.
func (b *Builder) Err() error {
	if b.err != nil {
		return b.err
	}
	return nil
}

// Build snapshots the accumulated state into a finished Card. The builder
// stays usable; repeated calls produce equivalent cards. Build fails when a
// misuse was recorded earlier or a column set is still open.
func (b *Builder) Build() (*Card, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.columnsOpen {
		return nil, &StateError{Op: "Build", Reason: "unclosed column context"}
	}
	c := New(b.header, b.elements, ResponsiveTextSizeConfig(), SchemaVersion)
	c.language = b.language
	return c, nil
}

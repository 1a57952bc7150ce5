package card

// Block is one element of a card payload: a nested key-value tree obeying the
// Lark interactive-card schema. Constructors return fresh maps, and omitted
// optional fields are absent entirely rather than serialized as null.
type Block map[string]any

const defaultMargin = "0px 0px 0px 0px"

// Column width modes understood by the card renderer.
const (
	WidthAuto     = "auto"
	WidthWeighted = "weighted"
)

// PlainText wraps a string in a plain_text element.
func PlainText(content string) Block {
	return Block{"tag": "plain_text", "content": content}
}

type markdownOptions struct {
	textAlign string
	textSize  string
	margin    string
}

// MarkdownOption adjusts the presentation of a markdown block.
type MarkdownOption func(*markdownOptions)

// WithTextAlign sets the markdown text alignment ("left", "center", "right").
func WithTextAlign(align string) MarkdownOption {
	return func(o *markdownOptions) {
		o.textAlign = align
	}
}

// WithTextSize sets the markdown text size key (e.g. "normal", "normal_v2").
func WithTextSize(size string) MarkdownOption {
	return func(o *markdownOptions) {
		o.textSize = size
	}
}

// WithMargin sets the markdown block margin (CSS-like shorthand).
func WithMargin(margin string) MarkdownOption {
	return func(o *markdownOptions) {
		o.margin = margin
	}
}

// Markdown creates a markdown block. Defaults: left aligned, normal size,
// zero margin.
func Markdown(content string, opts ...MarkdownOption) Block {
	o := markdownOptions{textAlign: "left", textSize: "normal", margin: defaultMargin}
	for _, opt := range opts {
		opt(&o)
	}
	return Block{
		"tag":        "markdown",
		"content":    content,
		"text_align": o.textAlign,
		"text_size":  o.textSize,
		"margin":     o.margin,
	}
}

type headerOptions struct {
	status   string
	color    string
	subtitle string
	textTags []Block
	padding  string
}

// HeaderOption adjusts optional header fields. WithStatus and WithColor are
// consumed by the builder's color resolution; the Header constructor takes the
// resolved template directly and ignores them.
type HeaderOption func(*headerOptions)

// WithStatus derives the header color from a semantic workflow status.
func WithStatus(status string) HeaderOption {
	return func(o *headerOptions) {
		o.status = status
	}
}

// WithColor sets the header color explicitly, overriding any status-derived
// color.
func WithColor(color string) HeaderOption {
	return func(o *headerOptions) {
		o.color = color
	}
}

// WithSubtitle sets the header subtitle text.
func WithSubtitle(subtitle string) HeaderOption {
	return func(o *headerOptions) {
		o.subtitle = subtitle
	}
}

// WithTextTags attaches text tag blocks to the header.
func WithTextTags(tags ...Block) HeaderOption {
	return func(o *headerOptions) {
		o.textTags = append([]Block{}, tags...)
	}
}

// WithHeaderPadding sets the header padding (CSS-like shorthand).
func WithHeaderPadding(padding string) HeaderOption {
	return func(o *headerOptions) {
		o.padding = padding
	}
}

// Header creates a card header block. Optional fields appear only when
// provided so existing card output stays byte-stable.
func Header(title, template string, opts ...HeaderOption) Block {
	o := headerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	h := Block{
		"title":    PlainText(title),
		"template": template,
	}
	if o.subtitle != "" {
		h["subtitle"] = PlainText(o.subtitle)
	}
	if len(o.textTags) > 0 {
		h["text_tag_list"] = o.textTags
	}
	if o.padding != "" {
		h["padding"] = o.padding
	}
	return h
}

// TextTag creates a text tag descriptor for card headers.
func TextTag(text, color string) Block {
	return Block{
		"tag":   "text_tag",
		"text":  PlainText(text),
		"color": color,
	}
}

// Divider creates a horizontal separator block.
func Divider() Block {
	return Block{"tag": "hr"}
}

// Body wraps body elements in a vertical container.
func Body(elements []Block) Block {
	return Block{
		"direction": "vertical",
		"elements":  append([]Block{}, elements...),
	}
}

type columnOptions struct {
	width     string
	weight    int
	hasWeight bool
}

// ColumnOption adjusts column sizing.
type ColumnOption func(*columnOptions)

// WithWidth sets the column width mode, WidthAuto or WidthWeighted.
func WithWidth(width string) ColumnOption {
	return func(o *columnOptions) {
		o.width = width
	}
}

// WithWeight sets the relative weight carried by a weighted column.
func WithWeight(weight int) ColumnOption {
	return func(o *columnOptions) {
		o.weight = weight
		o.hasWeight = true
	}
}

// Column creates a column block holding the given elements. The weight field
// appears only when explicitly set.
func Column(elements []Block, opts ...ColumnOption) Block {
	o := columnOptions{width: WidthAuto}
	for _, opt := range opts {
		opt(&o)
	}
	col := Block{
		"tag":              "column",
		"width":            o.width,
		"elements":         append([]Block{}, elements...),
		"vertical_spacing": "8px",
		"horizontal_align": "left",
		"vertical_align":   "top",
	}
	if o.hasWeight {
		col["weight"] = o.weight
	}
	return col
}

// ColumnSet wraps columns in a column_set block with the shared presentation
// defaults used across the template catalog.
func ColumnSet(columns []Block) Block {
	return Block{
		"tag":                "column_set",
		"background_style":   "grey-100",
		"horizontal_spacing": "12px",
		"horizontal_align":   "left",
		"columns":            append([]Block{}, columns...),
		"margin":             defaultMargin,
	}
}

// CollapsiblePanel creates a collapsible panel with a markdown title and the
// standard expand icon.
func CollapsiblePanel(titleMarkdown string, elements []Block, expanded bool) Block {
	return Block{
		"tag":      "collapsible_panel",
		"expanded": expanded,
		"header": Block{
			"title": Block{
				"tag":     "markdown",
				"content": titleMarkdown,
			},
			"background_color": "grey-200",
			"vertical_align":   "center",
			"icon": Block{
				"tag":   "standard_icon",
				"token": "down-small-ccm_outlined",
				"color": "",
				"size":  "16px 16px",
			},
			"icon_position":       "right",
			"icon_expanded_angle": -180,
		},
		"border":           Block{"color": "grey", "corner_radius": "5px"},
		"vertical_spacing": "8px",
		"padding":          "8px 8px 8px 8px",
		"elements":         append([]Block{}, elements...),
	}
}

// ResponsiveTextSizeConfig creates the style config block that keeps
// normal_v2 text readable on mobile clients.
func ResponsiveTextSizeConfig() Block {
	return Block{
		"update_multi": true,
		"style": Block{
			"text_size": Block{
				"normal_v2": Block{
					"default": "normal",
					"pc":      "normal",
					"mobile":  "heading",
				},
			},
		},
	}
}

// TemplateReference creates a reference to a published card template by ID
// and version.
func TemplateReference(templateID, versionName string, variables map[string]any) Block {
	return Block{
		"type": "template",
		"data": Block{
			"template_id":           templateID,
			"template_version_name": versionName,
			"template_variable":     variables,
		},
	}
}

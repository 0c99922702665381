package host

// Kind identifies what a node on the design surface is. The plugin only
// distinguishes the kinds it acts on; everything else is KindOther.
type Kind string

const (
	KindComponent Kind = "component"
	KindInstance  Kind = "instance"
	KindFrame     Kind = "frame"
	KindText      Kind = "text"
	KindOther     Kind = "other"
)

// Weight is a typeface weight. The generator uses exactly these three.
type Weight string

const (
	WeightRegular Weight = "regular"
	WeightMedium  Weight = "medium"
	WeightBold    Weight = "bold"
)

// Direction is a frame's auto-layout axis.
type Direction string

const (
	Row    Direction = "row"
	Column Direction = "column"
)

// Property is one variant property. Properties are kept as an ordered slice
// because their insertion order is meaningful when serialized into labels.
type Property struct {
	Key   string
	Value string
}

// VariantSet is the parent grouping of components that differ only by
// variant property values.
type VariantSet struct {
	Name string
}

// FrameProps holds layout and paint attributes for frame nodes.
type FrameProps struct {
	Direction Direction
	Spacing   float64
	Padding   float64
	Fill      string // hex color, empty for no fill
	Stroke    string // hex color, empty for no stroke
}

// TextProps holds content and text styling for text nodes.
type TextProps struct {
	Content string
	Weight  Weight
	Size    float64
	Color   string // hex
}

// Node is a selectable object on the design surface, tagged by Kind.
// Only the fields matching the kind are populated.
type Node struct {
	ID   string
	Kind Kind
	Name string

	// Component fields.
	Key          string      // stable key within the host's component namespace
	VariantSet   *VariantSet // parent grouping, nil for standalone components
	VariantProps []Property

	// Instance fields.
	Master *Node // the component this instance references

	// Frame and text fields.
	Frame *FrameProps
	Text  *TextProps

	Children []*Node
}

// Append adds children to the node in order.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// NewFrame creates a frame node with the given layout attributes.
func NewFrame(name string, props FrameProps) *Node {
	return &Node{Kind: KindFrame, Name: name, Frame: &props}
}

// NewText creates a text node.
func NewText(content string, props TextProps) *Node {
	props.Content = content
	return &Node{Kind: KindText, Name: content, Text: &props}
}

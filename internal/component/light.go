package component

type PointLight struct {
	Intensity float32
}

// Text is a label drawn at the entity's Position plus Offset.
type Text struct {
	Content          string
	Size             float32
	OffsetX, OffsetY float32
}

func NewText(content string) Text { return Text{Content: content, Size: 1} }

package render

import (
	"encoding/binary"
	"math"

	"github.com/stoneng/stoneng/internal/core/ecs"
)

// SpriteRecordSize is the encoded size of one SpriteRecord in bytes.
const SpriteRecordSize = 48

// SpriteRecord is one drawable sprite instance. Field order is the wire
// order used by Encode.
type SpriteRecord struct {
	X, Y, Z        float32
	ScaleX, ScaleY float32
	Rotation       float32
	R, G, B, A     float32
	SpriteID       uint32
	Dims           uint8 // (w-1) | (h-1)<<4
	Flags          uint8
	Reserved       uint16
}

// LightRecord is a point light in world space.
type LightRecord struct {
	X, Y      float32
	Intensity float32
}

// TextRecord is a label anchored in world space.
type TextRecord struct {
	X, Y, Z    float32
	Size       float32
	R, G, B, A float32
	Text       string
}

// Layer orders sprite batches within a frame.
type Layer int

const (
	LayerFloor Layer = iota
	LayerWall
	LayerSprite
)

func (l Layer) String() string {
	switch l {
	case LayerFloor:
		return "floor"
	case LayerWall:
		return "wall"
	case LayerSprite:
		return "sprite"
	}
	return "unknown"
}

// Viewport carries the window size and camera offset for a frame.
type Viewport struct {
	Window ecs.WindowSize
	View   ecs.View
}

// SpriteBatch is the per-pass sequence of sprite records. Records are
// reused across ticks; Bytes encodes them for a GPU-style consumer.
type SpriteBatch struct {
	Records []SpriteRecord
	buf     []byte
}

// Reset empties the batch, keeping capacity.
func (b *SpriteBatch) Reset() {
	b.Records = b.Records[:0]
}

func (b *SpriteBatch) Append(r SpriteRecord) {
	b.Records = append(b.Records, r)
}

func (b *SpriteBatch) Len() int { return len(b.Records) }

// Bytes encodes every record little-endian, SpriteRecordSize bytes each.
// The returned slice is reused by the next call.
func (b *SpriteBatch) Bytes() []byte {
	b.buf = b.buf[:0]
	for i := range b.Records {
		b.buf = b.Records[i].AppendTo(b.buf)
	}
	return b.buf
}

// AppendTo appends the encoded record to buf.
func (r *SpriteRecord) AppendTo(buf []byte) []byte {
	var b [SpriteRecordSize]byte
	floats := [...]float32{r.X, r.Y, r.Z, r.ScaleX, r.ScaleY, r.Rotation, r.R, r.G, r.B, r.A}
	off := 0
	for _, f := range floats {
		binary.LittleEndian.PutUint32(b[off:], math.Float32bits(f))
		off += 4
	}
	binary.LittleEndian.PutUint32(b[off:], r.SpriteID)
	off += 4
	b[off] = r.Dims
	b[off+1] = r.Flags
	binary.LittleEndian.PutUint16(b[off+2:], r.Reserved)
	return append(buf, b[:]...)
}

// DecodeSprite reads one record previously written by AppendTo.
func DecodeSprite(b []byte) SpriteRecord {
	f := func(i int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])) }
	return SpriteRecord{
		X: f(0), Y: f(1), Z: f(2),
		ScaleX: f(3), ScaleY: f(4),
		Rotation: f(5),
		R: f(6), G: f(7), B: f(8), A: f(9),
		SpriteID: binary.LittleEndian.Uint32(b[40:]),
		Dims:     b[44],
		Flags:    b[45],
		Reserved: binary.LittleEndian.Uint16(b[46:]),
	}
}

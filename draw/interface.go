package draw

// Font measures text. Layout never draws; it only needs widths and the
// line height.
type Font interface {
	Name() string
	Height() int
	BytesWidth(b []byte) int
	RunesWidth(r []rune) int
	StringWidth(s string) int
}

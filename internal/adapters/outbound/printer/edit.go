package printer

import (
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
)

// TextEdit replaces bytes [Start, End) of a file with NewText.
type TextEdit struct {
	Start   int
	End     int
	NewText string
}

// EditBuilder accumulates text edits for one file.
type EditBuilder struct {
	Edits []TextEdit
}

func NewEditBuilder() *EditBuilder {
	return &EditBuilder{Edits: make([]TextEdit, 0)}
}

func (b *EditBuilder) Replace(start, end int, text string) {
	b.Edits = append(b.Edits, TextEdit{Start: start, End: end, NewText: text})
}

func (b *EditBuilder) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

func (b *EditBuilder) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Apply applies the edits to src. Edits must not overlap; inserts at the
// same offset keep the order they were added in.
func (b *EditBuilder) Apply(src []byte) ([]byte, error) {
	edits := append([]TextEdit(nil), b.Edits...)
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Start < edits[j].Start
	})

	var out strings.Builder
	out.Grow(len(src))
	pos := 0
	for _, e := range edits {
		if e.Start < pos || e.End < e.Start || e.End > len(src) {
			return nil, errors.Errorf("edit [%d, %d) overlaps or is out of range: %w", e.Start, e.End, domain.ErrTreeMutation)
		}
		out.Write(src[pos:e.Start])
		out.WriteString(e.NewText)
		pos = e.End
	}
	out.Write(src[pos:])
	return []byte(out.String()), nil
}

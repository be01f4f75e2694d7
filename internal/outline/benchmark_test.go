package outline_test

import (
	"fmt"
	"testing"

	"github.com/dgallion1/docoutline/internal/outline"
)

// BenchmarkOutlineDepthScaling processes documents whose headings repeat
// depths 0 through 4. Time per op should grow linearly with groups.
func BenchmarkOutlineDepthScaling(b *testing.B) {
	for _, groups := range []int{100, 200, 400, 800, 1600} {
		depths := make([]int, 0, groups*5)
		for range groups {
			depths = append(depths, 0, 1, 2, 3, 4)
		}
		sections := byDepths(depths...)
		for i := range sections {
			sections[i].words = 3
		}

		b.Run(fmt.Sprintf("groups=%d", groups), func(b *testing.B) {
			for b.Loop() {
				src, blocks := synthetic(sections...)
				e := outline.New(src, outline.DefaultOptions(), nil)
				if _, err := e.Process(blocks, &outline.WordsTarget{Words: 10000}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

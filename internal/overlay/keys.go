package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ikari-pl/borrowscope/internal/mir"
)

// PrefixForPoint truncates the selected path to end at the first occurrence
// of the point's block. The second return is false when the block does not
// appear on the path at all; there is no valid overlay for such a point and
// no request may be issued for it.
func PrefixForPoint(path mir.Path, block int) (mir.Path, bool) {
	for i, b := range path {
		if b == block {
			prefix := make(mir.Path, i+1)
			copy(prefix, path[:i+1])
			return prefix, true
		}
	}
	return nil, false
}

// BundleKey addresses one per-point bundle.
type BundleKey struct {
	Function string
	Prefix   mir.Path
	Stmt     int
}

func (k BundleKey) String() string {
	parts := make([]string, len(k.Prefix))
	for i, b := range k.Prefix {
		parts[i] = "bb" + strconv.Itoa(b)
	}
	return fmt.Sprintf("%s/%s@%d", k.Function, strings.Join(parts, "_"), k.Stmt)
}

// Equal compares keys including the prefix contents.
func (k BundleKey) Equal(o BundleKey) bool {
	if k.Function != o.Function || k.Stmt != o.Stmt || len(k.Prefix) != len(o.Prefix) {
		return false
	}
	for i := range k.Prefix {
		if k.Prefix[i] != o.Prefix[i] {
			return false
		}
	}
	return true
}

// DotKey addresses the auxiliary per-point DOT graph. It is independent of
// the selected path.
type DotKey struct {
	Function string
	Block    int
	Stmt     int
}

func (k DotKey) String() string {
	return fmt.Sprintf("%s/bb%d@%d", k.Function, k.Block, k.Stmt)
}

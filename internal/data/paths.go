package data

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ikari-pl/borrowscope/internal/mir"
	"github.com/ikari-pl/borrowscope/internal/overlay"
)

// Resource path conventions. Every dataset is a static file under the
// per-function directory; the path is the address.
//
//	functions.json
//	<fn>/mir.json
//	<fn>/paths.json
//	<fn>/assertions.json
//	<fn>/path_bb0_bb2_stmt_3.json
//	<fn>/block_2_stmt_3.dot

func functionsPath() string {
	return "functions.json"
}

func graphPath(fn string) string {
	return fn + "/mir.json"
}

func pathsPath(fn string) string {
	return fn + "/paths.json"
}

func assertionsPath(fn string) string {
	return fn + "/assertions.json"
}

func bundlePath(key overlay.BundleKey) string {
	return fmt.Sprintf("%s/path_%s_stmt_%d.json", key.Function, joinBlocks(key.Prefix), key.Stmt)
}

func dotPath(key overlay.DotKey) string {
	return fmt.Sprintf("%s/block_%d_stmt_%d.dot", key.Function, key.Block, key.Stmt)
}

func joinBlocks(p mir.Path) string {
	parts := make([]string, len(p))
	for i, b := range p {
		parts[i] = "bb" + strconv.Itoa(b)
	}
	return strings.Join(parts, "_")
}

package serialize

import (
	"sablec/report"
	"sablec/summary"
)

// MergeIndexFiles loads every summary file in paths into a single combined
// index named by the given label.  Function summaries accumulate across
// inputs; ownership of every summary transfers to the combined index.  The
// merge is commutative with respect to set contents, though slot
// implementation order and edge order reflect load order.
func MergeIndexFiles(paths []string, combinedName string) (*summary.ModuleSummaryIndex, error) {
	combined := summary.NewIndex(combinedName)

	for _, path := range paths {
		report.LogVerbose("loading module summary %s", path)

		if err := ReadIndexFile(path, combined); err != nil {
			return nil, err
		}
	}

	combined.ModuleName = combinedName
	return combined, nil
}

package fetch

import (
	"context"
	"fmt"

	"github.com/jmylchreest/csspalette/internal/adapter/input"
)

// Result is the outcome of vendoring one file.
type Result struct {
	VendoredFile
	Changed bool
}

// All fetches every file from the adapter and vendors it, in order.
// Files vendored before a failure stay vendored.
func All(ctx context.Context, adapter input.SourceAdapter, v *Vendorer, files []string) ([]Result, error) {
	seen := make(map[string]string, len(files))
	for _, name := range files {
		stem, ext := splitName(name)
		if other, ok := seen[stem+ext]; ok {
			return nil, fmt.Errorf("%s and %s would be vendored under the same name", other, name)
		}
		seen[stem+ext] = name
	}

	results := make([]Result, 0, len(files))
	for _, name := range files {
		v.logger.Debug("fetching", "source", adapter.Name(), "file", name)

		asset, err := adapter.Fetch(ctx, name)
		if err != nil {
			return results, fmt.Errorf("fetch %s: %w", name, err)
		}

		vf, changed, err := v.Vendor(asset)
		if err != nil {
			return results, fmt.Errorf("vendor %s: %w", name, err)
		}
		results = append(results, Result{VendoredFile: vf, Changed: changed})
	}
	return results, nil
}

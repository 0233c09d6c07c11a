package analysis

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/indiaviz-cli/internal/dataset"
)

// Overall selects every region.
const Overall = "Overall"

// ErrUnknownParameter indicates a parameter that is not a numeric column.
var ErrUnknownParameter = errors.New("unknown parameter")

// Selection is the set of user choices that parameterize one dashboard build.
type Selection struct {
	Region    string `json:"region"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Normalize bool   `json:"normalize"`
}

// IsOverall reports whether the selection spans all regions.
func (s Selection) IsOverall() bool { return s.Region == "" || s.Region == Overall }

// Check validates parameters against the dataset. Identical primary and
// secondary parameters produce a warning, not an error.
func (s Selection) Check(ds *dataset.Dataset) (warnings []string, err error) {
	for _, p := range []string{s.Primary, s.Secondary} {
		if !ds.IsNumeric(p) {
			return nil, fmt.Errorf("%w: %q is not a numeric column", ErrUnknownParameter, p)
		}
	}
	if s.Primary == s.Secondary {
		warnings = append(warnings, "Primary and Secondary parameters should be different")
	}
	return warnings, nil
}

// Options controls ranking sizes and the outlier threshold.
type Options struct {
	// TopN is the size of district top/bottom rankings.
	TopN int
	// TopRegions is the size of the region population ranking.
	TopRegions int
	// OutlierThreshold flags rows with |z| above it.
	OutlierThreshold float64
	// OutlierDisplay caps each of the high/low outlier lists.
	OutlierDisplay int
}

// DefaultOptions returns the dashboard defaults.
func DefaultOptions() Options {
	return Options{
		TopN:             10,
		TopRegions:       5,
		OutlierThreshold: 2,
		OutlierDisplay:   5,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TopN <= 0 {
		o.TopN = d.TopN
	}
	if o.TopRegions <= 0 {
		o.TopRegions = d.TopRegions
	}
	if o.OutlierThreshold <= 0 {
		o.OutlierThreshold = d.OutlierThreshold
	}
	if o.OutlierDisplay <= 0 {
		o.OutlierDisplay = d.OutlierDisplay
	}
	return o
}

package analysis

import (
	"errors"
	"time"

	"github.com/KaramelBytes/indiaviz-cli/internal/dataset"
	"github.com/google/uuid"
)

// State is the interaction state of a Session.
type State int

const (
	// Idle means no build action has run yet.
	Idle State = iota
	// Built means the pipeline ran for the latest selection.
	Built
)

func (s State) String() string {
	if s == Built {
		return "built"
	}
	return "idle"
}

// Dashboard is the plain result of one build. Renderers consume it without
// knowing how any value was derived.
type Dashboard struct {
	ID          string        `json:"id"`
	BuiltAt     time.Time     `json:"built_at"`
	Dataset     string        `json:"dataset"`
	Selection   Selection     `json:"selection"`
	View        *View         `json:"-"`
	KPIs        KPIs          `json:"kpis"`
	Primary     NumSummary    `json:"primary"`
	Secondary   NumSummary    `json:"secondary"`
	Top         []Ranked      `json:"top"`
	Bottom      []Ranked      `json:"bottom"`
	TopRegions  []RegionTotal `json:"top_regions"`
	Outliers    OutlierResult `json:"outliers"`
	Correlation Correlation   `json:"correlation"`
	Warnings    []string      `json:"warnings,omitempty"`
}

// Session holds the read-only dataset and the most recent build.
type Session struct {
	ds      *dataset.Dataset
	opt     Options
	state   State
	current *Dashboard
}

// NewSession starts an Idle session over ds.
func NewSession(ds *dataset.Dataset, opt Options) *Session {
	return &Session{ds: ds, opt: opt.withDefaults()}
}

// State returns the current interaction state.
func (s *Session) State() State { return s.state }

// Dashboard returns the latest build, or nil while Idle.
func (s *Session) Dashboard() *Dashboard { return s.current }

// Dataset returns the session dataset.
func (s *Session) Dataset() *dataset.Dataset { return s.ds }

// Build runs filter → normalize → aggregate → outliers → correlation for sel
// and enters the Built state with a fresh dashboard. KPIs and the region
// ranking use raw values even when normalization is on. On error the session
// keeps its previous state.
func (s *Session) Build(sel Selection) (*Dashboard, error) {
	if s.ds == nil {
		return nil, errors.New("session has no dataset")
	}
	if sel.Region == "" {
		sel.Region = Overall
	}
	warnings, err := sel.Check(s.ds)
	if err != nil {
		return nil, err
	}
	raw := FilterRegion(s.ds, sel.Region)
	view := raw
	if sel.Normalize {
		view = Normalize(raw, sel.Primary, sel.Secondary)
	}
	if view.Len() == 0 {
		warnings = append(warnings, "no rows match region "+sel.Region)
	}

	d := &Dashboard{
		ID:          uuid.NewString(),
		BuiltAt:     time.Now(),
		Dataset:     s.ds.Name,
		Selection:   sel,
		View:        view,
		KPIs:        ComputeKPIs(raw),
		Primary:     Summarize(view, sel.Primary),
		Secondary:   Summarize(view, sel.Secondary),
		Top:         TopN(view, sel.Primary, s.opt.TopN),
		Bottom:      BottomN(view, sel.Primary, s.opt.TopN),
		TopRegions:  TopRegionsByPopulation(raw, s.opt.TopRegions),
		Outliers:    DetectOutliers(view, sel.Primary, s.opt.OutlierThreshold, s.opt.OutlierDisplay),
		Correlation: Correlate(view, sel.Primary, sel.Secondary),
		Warnings:    warnings,
	}
	s.current = d
	s.state = Built
	return d, nil
}

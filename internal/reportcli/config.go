// Package reportcli prints dashboard views from the command line, either
// built in-process from the configured provider or fetched from a running
// server.
package reportcli

import (
	"fmt"
	"slices"
	"time"
)

// Sections accepted by --section. "all" is the full report.
const (
	SectionAll         = "all"
	SectionProfile     = "profile"
	SectionDashboard   = "dashboard"
	SectionPerformance = "performance"
	SectionInjury      = "injury"
	SectionNutrition   = "nutrition"
	SectionFinance     = "finance"
)

// Sections lists every accepted section in help order.
var Sections = []string{
	SectionAll, SectionProfile, SectionDashboard, SectionPerformance,
	SectionInjury, SectionNutrition, SectionFinance,
}

// Defaults.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
	DefaultWait         = 60 * time.Second
)

// Options holds the parsed flags.
type Options struct {
	Section      string
	FixturesPath string
	// URL, when set, fetches from a running server instead of building locally.
	URL          string
	Timeout      time.Duration
	Compact      bool
	PollInterval time.Duration
	Wait         time.Duration
}

// Validate rejects unknown sections.
func (o Options) Validate() error {
	if !slices.Contains(Sections, o.Section) {
		return fmt.Errorf("%w: %q (want one of %v)", ErrUnknownSection, o.Section, Sections)
	}
	return nil
}

// routeOf maps a section to its API path.
func routeOf(section string) string {
	if section == SectionAll {
		return "/api/v1/report"
	}
	return "/api/v1/" + section
}

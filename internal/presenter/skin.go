package presenter

import (
	"fmt"
	"strings"

	"wellness-eligibility/internal/common/config"
	"wellness-eligibility/internal/models"
)

// Skin is the presentation-only configuration of one embedding of the checker.
type Skin struct {
	Name         string
	Title        string
	PrimaryColor string
	AccentColor  string
	Width        int
	StepLabels   []string
}

const (
	minWidth     = 40
	defaultWidth = 72
)

var defaultStepLabels = []string{"Company", "Locations", "Workforce", "Benefits", "Contact"}

var presets = map[string]Skin{
	"default": {
		Name:         "default",
		Title:        "Wellness Benefit Eligibility Checker",
		PrimaryColor: "#0f766e",
		AccentColor:  "#f59e0b",
		Width:        defaultWidth,
		StepLabels:   defaultStepLabels,
	},
	"embedded": {
		Name:         "embedded",
		Title:        "Check your eligibility",
		PrimaryColor: "#1d4ed8",
		AccentColor:  "#22c55e",
		Width:        56,
		StepLabels:   []string{"Company", "Sites", "Staff", "Goals", "Contact"},
	},
	"landing": {
		Name:         "landing",
		Title:        "Is your business eligible?",
		PrimaryColor: "#7c3aed",
		AccentColor:  "#ec4899",
		Width:        80,
		StepLabels:   []string{"About your company", "Where you work", "Your team", "Wellness goals", "Your details"},
	},
}

// SkinFromConfig starts from the named preset (default when unknown) and applies
// any non-empty overrides from cfg.
func SkinFromConfig(cfg config.SkinConfig) Skin {
	s, ok := presets[strings.ToLower(strings.TrimSpace(cfg.Name))]
	if !ok {
		s = presets["default"]
	}
	s.StepLabels = append([]string(nil), s.StepLabels...)

	if cfg.Title != "" {
		s.Title = cfg.Title
	}
	if cfg.PrimaryColor != "" {
		s.PrimaryColor = cfg.PrimaryColor
	}
	if cfg.AccentColor != "" {
		s.AccentColor = cfg.AccentColor
	}
	if cfg.Width > 0 {
		s.Width = cfg.Width
	}
	if s.Width < minWidth {
		s.Width = minWidth
	}
	if len(cfg.StepLabels) == models.MaxStep {
		s.StepLabels = append([]string(nil), cfg.StepLabels...)
	}
	return s
}

// StepLabel returns the label for a 1-based step.
func (s Skin) StepLabel(step int) string {
	if step < models.MinStep || step > len(s.StepLabels) {
		return fmt.Sprintf("Step %d", step)
	}
	return s.StepLabels[step-1]
}

// Progress renders e.g. "[##---] Step 2 of 5: Locations".
func (s Skin) Progress(step int) string {
	done := step
	if done < 0 {
		done = 0
	}
	if done > models.MaxStep {
		done = models.MaxStep
	}
	bar := strings.Repeat("#", done) + strings.Repeat("-", models.MaxStep-done)
	return fmt.Sprintf("[%s] Step %d of %d: %s", bar, step, models.MaxStep, s.StepLabel(step))
}

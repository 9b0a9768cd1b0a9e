package project

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Status is the outcome of a single generator step.
type Status string

const (
	StatusCreate    Status = "create"
	StatusForce     Status = "force"
	StatusIdentical Status = "identical"
	StatusSkip      Status = "skip"
	StatusExists    Status = "exists"
	StatusRoute     Status = "route"
)

// Step records what happened to one path.
type Step struct {
	Status Status
	Path   string
}

// Report lists the steps of a generator run in the order they happened.
type Report struct {
	Steps []Step
}

func (r *Report) add(s Status, path string) Step {
	step := Step{Status: s, Path: path}
	r.Steps = append(r.Steps, step)
	return step
}

// Paths returns the paths that ended up with the given status.
func (r *Report) Paths(s Status) []string {
	var out []string
	for _, step := range r.Steps {
		if step.Status == s {
			out = append(out, step.Path)
		}
	}
	return out
}

func statusColor(s Status) *color.Color {
	switch s {
	case StatusCreate, StatusRoute:
		return color.New(color.FgGreen, color.Bold)
	case StatusForce, StatusSkip:
		return color.New(color.FgYellow, color.Bold)
	case StatusIdentical, StatusExists:
		return color.New(color.FgBlue, color.Bold)
	default:
		return color.New(color.Bold)
	}
}

// print writes a status line in the familiar right-aligned generator layout.
func (s Step) print(w io.Writer) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "%s  %s\n", statusColor(s.Status).Sprintf("%12s", s.Status), s.Path)
}

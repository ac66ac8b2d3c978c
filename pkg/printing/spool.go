package printing

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/matzehuels/idphoto/pkg/errors"
)

// Spoolers are tried in order; the first one on PATH is used.
var Spoolers = []string{"lp", "lpr"}

var (
	lookPath       = exec.LookPath
	commandContext = exec.CommandContext
)

// Job is a print request handed to the system spooler.
type Job struct {
	Page    Page
	Path    string // PNG file to print
	Printer string // empty means the default destination
	Copies  int
}

// Spool sends job to the first available spooler and returns its name
// together with whatever it printed (usually the request id).
func Spool(ctx context.Context, job Job) (string, string, error) {
	if job.Path == "" {
		return "", "", errors.New(errors.ErrCodeInvalidPath, "nothing to print")
	}

	name, err := findSpooler()
	if err != nil {
		return "", "", err
	}

	cmd := commandContext(ctx, name, spoolArgs(name, job)...)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return name, "", ctx.Err()
		}
		return name, "", errors.Wrap(errors.ErrCodeResourceUnavailable, err, "%s: %s", name, strings.TrimSpace(errBuf.String()))
	}
	return name, strings.TrimSpace(out.String()), nil
}

func findSpooler() (string, error) {
	for _, name := range Spoolers {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", errors.New(errors.ErrCodeResourceUnavailable,
		"printing requires a print spooler (%s). Install CUPS with:\n  macOS:  included\n  Linux:  apt install cups-client",
		strings.Join(Spoolers, " or "))
}

// spoolArgs builds the command line for spooler name. lp and lpr take the
// same -o options but differ in how destination and copies are passed.
func spoolArgs(name string, job Job) []string {
	var args []string
	copies := max(job.Copies, 1)
	switch name {
	case "lpr":
		if job.Printer != "" {
			args = append(args, "-P", job.Printer)
		}
		args = append(args, fmt.Sprintf("-#%d", copies))
	default:
		if job.Printer != "" {
			args = append(args, "-d", job.Printer)
		}
		args = append(args, "-n", fmt.Sprint(copies))
	}

	args = append(args,
		"-o", "media="+job.Page.Media(),
		"-o", "fit-to-page",
	)
	if job.Page.Landscape {
		args = append(args, "-o", "landscape")
	}
	return append(args, job.Path)
}

package decompiler

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	shellquote "github.com/kballard/go-shellquote"

	"mddocs/internal/domain"
	"mddocs/internal/logger"
)

// Exec runs an external decompiler once per member. The command line is a
// template; {assembly}, {token}, {member} and {signature} are substituted per
// argument after shell-style splitting, so values containing spaces stay one
// argument.
type Exec struct {
	argv     []string
	assembly string
	timeout  time.Duration

	byToken     bool // the command passes {token}
	bySignature bool // the command passes {signature}
}

// NewExec parses command. assembly is substituted for {assembly}.
func NewExec(command, assembly string, timeout time.Duration) (*Exec, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrap(err, "parse decompiler command")
	}
	if len(argv) == 0 {
		return nil, errors.WithHint(errors.New("empty decompiler command"), "set decompiler.command or use decompiler.mode: static")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	d := &Exec{argv: argv, assembly: assembly, timeout: timeout}
	for _, a := range argv {
		d.byToken = d.byToken || strings.Contains(a, "{token}")
		d.bySignature = d.bySignature || strings.Contains(a, "{signature}")
	}
	if !d.byToken && !d.bySignature {
		logger.Logger.Warnw("decompiler command passes neither {token} nor {signature}; overloads receive identical arguments",
			"command", command)
	}
	return d, nil
}

// Args returns the expanded command line for h.
func (d *Exec) Args(h domain.MemberHandle) []string {
	r := strings.NewReplacer(
		"{assembly}", d.assembly,
		"{token}", h.Token,
		"{member}", h.FullName,
		"{signature}", h.Signature,
	)
	out := make([]string, len(d.argv))
	for i, a := range d.argv {
		out[i] = r.Replace(a)
	}
	return out
}

// Decompile runs the command and returns its standard output.
func (d *Exec) Decompile(ctx context.Context, h domain.MemberHandle) (string, error) {
	if d.byToken && !d.bySignature && h.Token == "" && h.Signature != "" {
		err := errors.Newf("%s has no metadata token", h)
		err = errors.WithHint(err, "record tokens in the metadata dump or pass {signature} in decompiler.command")
		return "", errors.Mark(err, domain.ErrDecompiler)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	args := d.Args(h)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		err = errors.Wrapf(err, "decompile %s", h)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = errors.WithDetail(err, msg)
		}
		return "", errors.Mark(err, domain.ErrDecompiler)
	}

	out := stdout.String()
	if strings.TrimSpace(out) == "" {
		return "", errors.Mark(errors.Newf("decompiler produced no text for %s", h), domain.ErrDecompiler)
	}
	return out, nil
}

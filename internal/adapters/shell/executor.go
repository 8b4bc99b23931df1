// Package shell provides an executor for external commands such as the declaration emitter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs the command and waits for it to complete. Output is forwarded to
// the logger line by line.
func (e *Executor) Execute(ctx context.Context, command domain.Command) error {
	if len(command.Args) == 0 {
		return domain.ErrEmptyCommand
	}

	name := command.Args[0]
	args := command.Args[1:]

	cmdEnv := resolveEnvironment(os.Environ(), toolEnv(command.Dir), command.Env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // configured command
	cmd.Args[0] = name
	cmd.Dir = command.Dir
	cmd.Env = cmdEnv

	stdoutLog := &logWriter{logger: e.logger, level: levelInfo}
	stderrLog := &logWriter{logger: e.logger, level: levelWarn}
	cmd.Stdout = stdoutLog
	cmd.Stderr = stderrLog

	err := cmd.Run()
	_ = stdoutLog.Close()
	_ = stderrLog.Close()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	wrapped := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "exit_code", exitCode)
	return zerr.With(wrapped, "command", name)
}

const (
	levelInfo = "info"
	levelWarn = "warn"
)

// logWriter splits a stream into lines and logs each one.
type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if strings.TrimSpace(msg) == "" {
		return
	}
	if w.level == levelInfo {
		w.logger.Info(msg)
		return
	}
	w.logger.Warn(msg)
}

// allowListedEnvVars are the system environment variables inherited by commands.
// Node tooling needs a few beyond the basics to locate its caches and options.
var allowListedEnvVars = map[string]struct{}{
	"HOME":         {},
	"TERM":         {},
	"USER":         {},
	"PATH":         {},
	"TMPDIR":       {},
	"LANG":         {},
	"NODE_OPTIONS": {},
	"NODE_PATH":    {},
}

// toolEnv puts the project's locally installed binaries ahead of the system PATH.
func toolEnv(dir string) []string {
	if dir == "" {
		return nil
	}
	bin := filepath.Join(dir, "node_modules", ".bin")
	if info, err := os.Stat(bin); err != nil || !info.IsDir() {
		return nil
	}
	return []string{"PATH=" + bin}
}

// resolveEnvironment merges the filtered system environment, the tool environment
// (whose PATH is prepended) and the command's own overrides, in that order.
func resolveEnvironment(sysEnv, tools []string, cmdEnv map[string]string) []string {
	envMap := filterSystemEnv(sysEnv)
	applyToolEnv(envMap, tools)

	for k, v := range cmdEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}
	return envMap
}

func applyToolEnv(envMap map[string]string, tools []string) {
	for _, entry := range tools {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}
}

// lookPath searches for an executable in the directories named by PATH in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

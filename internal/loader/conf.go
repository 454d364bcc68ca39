package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jar0582/schedsim/pkg/model"
)

// The block format:
//
//	# comment
//	"""
//	block comment
//	"""
//	process P1 {
//	    arrival_time = 0
//	    burst_time   = 5
//	    priority     = 3   # optional, defaults to 0
//	}

type confState int

const (
	confIdle confState = iota
	confInProcess
	confInComment
)

const commentFence = `"""`

func parseConf(r io.Reader, name string) ([]model.Process, error) {
	var (
		procs      []model.Process
		current    *model.Process
		hasArrival bool
		hasBurst   bool
		state      = confIdle
		resume     = confIdle
		lineNo     int
	)
	fail := func(format string, args ...any) error {
		return &model.LoadError{Path: name, Line: lineNo, Msg: fmt.Sprintf(format, args...)}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, commentFence) {
			if state == confInComment {
				state = resume
			} else {
				resume, state = state, confInComment
			}
			continue
		}
		if state == confInComment {
			continue
		}
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		switch state {
		case confIdle:
			procName, ok := parseHeader(line)
			if !ok {
				return nil, fail("expected 'process NAME {', got %q", line)
			}
			if len(procName) > model.MaxNameLength {
				return nil, fail("process name %q is longer than %d characters", procName, model.MaxNameLength)
			}
			procs = append(procs, model.Process{Name: procName})
			current = &procs[len(procs)-1]
			hasArrival, hasBurst = false, false
			state = confInProcess

		case confInProcess:
			if line == "}" {
				if !hasArrival || !hasBurst {
					return nil, fail("process %s: missing 'arrival_time' or 'burst_time'", current.Name)
				}
				current = nil
				state = confIdle
				continue
			}
			key, raw, found := strings.Cut(line, "=")
			if !found {
				return nil, fail("invalid syntax in process block: %q, expected 'key = value'", line)
			}
			key = strings.TrimSpace(key)
			value, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return nil, fail("process %s: %s must be an integer, got %q", current.Name, key, strings.TrimSpace(raw))
			}
			switch key {
			case "arrival_time":
				if value < 0 {
					return nil, fail("'arrival_time' cannot be negative for process %s", current.Name)
				}
				current.ArrivalTime = value
				hasArrival = true
			case "burst_time":
				if value <= 0 {
					return nil, fail("'burst_time' must be positive for process %s", current.Name)
				}
				current.BurstTime = value
				hasBurst = true
			case "priority":
				if value < 0 {
					return nil, fail("'priority' cannot be negative for process %s", current.Name)
				}
				current.Priority = value
			default:
				return nil, fail("unknown key %q for process %s", key, current.Name)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", model.ErrConfig, name, err)
	}

	switch {
	case state == confInComment:
		return nil, fail("unexpected end of file inside a %s comment block", commentFence)
	case state == confInProcess:
		return nil, fail("unexpected end of file while parsing process %s", current.Name)
	}
	return procs, nil
}

// parseHeader accepts "process NAME {" with optional spacing before the brace.
func parseHeader(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "process")
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	rest, ok = strings.CutSuffix(strings.TrimSpace(rest), "{")
	if !ok {
		return "", false
	}
	procName := strings.TrimSpace(rest)
	if procName == "" || strings.ContainsAny(procName, " \t") {
		return "", false
	}
	return procName, true
}

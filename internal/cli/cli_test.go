package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jar0582/schedsim/pkg/model"
)

const workload = `# three equal jobs
process A {
    arrival_time = 0
    burst_time = 5
}
process B {
    arrival_time = 0
    burst_time = 5
}
process C {
    arrival_time = 0
    burst_time = 5
}
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunJSON(t *testing.T) {
	path := writeTemp(t, "w.conf", workload)
	out, _, err := execute(t, "run", "-f", path, "-p", "rr", "-q", "2", "--json")
	require.NoError(t, err)

	var res model.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "rr", res.Policy)
	assert.Equal(t, 2, res.Quantum)
	assert.Equal(t, 15, res.TotalTime)
	assert.InDelta(t, 9.0, res.AverageWaitingTime, 0.001)
}

func TestRunText(t *testing.T) {
	path := writeTemp(t, "w.conf", workload)
	out, _, err := execute(t, "run", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Policy: fifo")
	assert.Contains(t, out, "Schedule table")
	assert.Contains(t, out, "Gantt schedule")
	assert.Contains(t, out, "|   A   |   B   |   C   |")
	assert.Contains(t, out, "██")
}

func TestRunUsesConfigFile(t *testing.T) {
	path := writeTemp(t, "w.conf", workload)
	conf := writeTemp(t, "run.yaml", "policy: rr\nquantum: 5\n")

	out, _, err := execute(t, "--config", conf, "run", "-f", path, "--json")
	require.NoError(t, err)
	var res model.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "rr", res.Policy)
	assert.Equal(t, 5, res.Quantum)
	assert.Equal(t, []string{"A", "B", "C"}, res.DispatchOrder())

	out, _, err = execute(t, "-c", conf, "run", "-f", path, "-p", "lifo", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "lifo", res.Policy, "flags override the config file")
}

func TestRunTrace(t *testing.T) {
	path := writeTemp(t, "w.conf", workload)
	_, stderr, err := execute(t, "--log-level", "info", "run", "-f", path, "--trace", "--json")
	require.NoError(t, err)
	assert.Equal(t, 15, strings.Count(stderr, "msg=tick"))
}

func TestRunErrors(t *testing.T) {
	path := writeTemp(t, "w.conf", workload)

	_, _, err := execute(t, "run")
	assert.Error(t, err, "file is required")

	_, _, err = execute(t, "run", "-f", path, "-p", "lottery")
	assert.ErrorIs(t, err, model.ErrPolicyNotFound)

	_, _, err = execute(t, "run", "-f", path, "--max-ticks", "4")
	assert.ErrorIs(t, err, model.ErrAborted)

	_, _, err = execute(t, "run", "-f", writeTemp(t, "bad.conf", "process A {\n"))
	assert.ErrorIs(t, err, model.ErrConfig)

	_, _, err = execute(t, "run", "-f", path, "--format", "toml")
	assert.Error(t, err)

	_, _, err = execute(t, "--log-format", "xml", "policies")
	assert.ErrorIs(t, err, model.ErrConfig)
}

func TestCompare(t *testing.T) {
	path := writeTemp(t, "w.csv", "A,5,0\nB,5,0\nC,5,0\n")
	out, _, err := execute(t, "compare", "-f", path, "--json")
	require.NoError(t, err)

	var results []model.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 8)
	for _, res := range results {
		assert.Equal(t, 15, res.TotalTime, res.Policy)
		assert.InDelta(t, 100.0, res.CPUUtilization, 0.001, res.Policy)
	}

	out, _, err = execute(t, "compare", "-f", path, "-p", "fifo,rr")
	require.NoError(t, err)
	assert.Contains(t, out, "| fifo ")
	assert.Contains(t, out, "| rr ")
	assert.NotContains(t, out, "| mlfq ")
}

func TestPolicies(t *testing.T) {
	out, _, err := execute(t, "policies")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[1], "fifo "))
	assert.Contains(t, out, "preemptive_priority")
	assert.Regexp(t, `(?m)^rr\s+yes$`, out)
}

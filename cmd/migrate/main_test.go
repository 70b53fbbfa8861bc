package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func envLookup(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestParseOptions(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		env     map[string]string
		want    options
		wantErr string
	}{
		{
			name: "defaults with env dsn",
			env:  map[string]string{envDSN: " postgres://localhost/orders "},
			want: options{direction: "up", dsn: "postgres://localhost/orders", timeout: defaultTimeout},
		},
		{
			name: "flag dsn wins over env",
			args: []string{"-dsn=postgres://flag/orders", "-direction=STATUS"},
			env:  map[string]string{envDSN: "postgres://env/orders"},
			want: options{direction: "status", dsn: "postgres://flag/orders", timeout: defaultTimeout},
		},
		{
			name: "down defaults to one step",
			args: []string{"-direction=down", "-dsn=postgres://localhost/orders", "-timeout=5s"},
			want: options{direction: "down", steps: 1, dsn: "postgres://localhost/orders", timeout: 5 * time.Second},
		},
		{
			name:    "missing dsn",
			args:    []string{"-direction=status"},
			wantErr: envDSN,
		},
		{
			name:    "bad direction",
			args:    []string{"-direction=sideways", "-dsn=postgres://localhost/orders"},
			wantErr: "unsupported direction",
		},
		{
			name:    "negative steps",
			args:    []string{"-steps=-1", "-dsn=postgres://localhost/orders"},
			wantErr: "steps must be >= 0",
		},
		{
			name:    "unknown flag",
			args:    []string{"-force"},
			wantErr: "flag provided but not defined",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseOptions(tc.args, envLookup(tc.env))
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// Откат не проверяется: база общая с интеграционными тестами хранилища.
func TestRun_UpAndStatus(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("ORDERS_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("postgres dsn is not available")
	}

	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, run(ctx, []string{"-direction=up", "-dsn=" + dsn}, &out))
	require.Contains(t, out.String(), "migrate up ok: version=2 applied=2")

	out.Reset()
	require.NoError(t, run(ctx, []string{"-direction=status", "-dsn=" + dsn}, &out))
	require.Contains(t, out.String(), "migrate status ok: version=2 applied=2")
}

func TestRun_InvalidArgs(t *testing.T) {
	err := run(context.Background(), []string{"-direction=sideways", "-dsn=postgres://localhost/orders"}, &bytes.Buffer{})
	require.ErrorContains(t, err, "unsupported direction")
}

func TestFailExits(t *testing.T) {
	if os.Getenv("MIGRATE_TEST_FAIL_EXIT") == "1" {
		fail("forced failure %d", 42)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFailExits")
	cmd.Env = append(os.Environ(), "MIGRATE_TEST_FAIL_EXIT=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to exit with error")
	}
	if exitErr, ok := err.(*exec.ExitError); !ok || exitErr.ExitCode() == 0 {
		t.Fatalf("expected non-zero exit code, got %v", err)
	}
}

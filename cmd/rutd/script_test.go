package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"rutd": run,
	}))
}

func TestScripts(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			env.Setenv("RUTD_PATH__ROOT_DIR", filepath.Join(env.WorkDir, ".rutd"))
			env.Setenv("GIT_CONFIG_NOSYSTEM", "1")
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"taskid": cmdTaskID,
		},
	})
}

// cmdTaskID resolves the id of the only stored task into the named
// environment variable (default ID), so scripts can address tasks whose
// generated ids they cannot predict.
func cmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	name := "ID"
	if len(args) > 0 {
		name = args[0]
	}

	dir := filepath.Join(ts.Getenv("RUTD_PATH__ROOT_DIR"), "tasks")
	entries, err := os.ReadDir(dir)
	ts.Check(err)

	var ids []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".toml") {
			ids = append(ids, strings.TrimSuffix(entry.Name(), ".toml"))
		}
	}
	if len(ids) != 1 {
		ts.Fatalf("want exactly one task record, found %d", len(ids))
	}
	ts.Setenv(name, ids[0])
}

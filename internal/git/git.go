// Package git wraps the git CLI for the task repository.
//
// Every store mutation becomes a commit under a fixed synthetic identity, so
// the repository history doubles as an audit log of the tracker. Remote
// operations delegate SSH authentication to the OpenSSH stack git itself
// invokes (key files, then agent); HTTPS credentials from the tracker config
// are injected through an inline credential helper.
package git

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Synthetic identity used for every commit the tracker creates.
const (
	AuthorName  = "rutd"
	AuthorEmail = "rutd@auto.commit"
)

var (
	// ErrTargetNotEmpty is returned when cloning into a non-empty directory.
	ErrTargetNotEmpty = errors.New("clone target directory is not empty")

	// ErrCloneFailed is returned when the clone transport fails.
	ErrCloneFailed = errors.New("clone failed")

	// ErrFetchFailed is returned when fetching from the remote fails.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrPushRejected is returned on a non-fast-forward push rejection.
	ErrPushRejected = errors.New("push rejected: remote has new commits, sync again to merge them first")

	// ErrMergeConflict is returned when a merge conflicts and no preference
	// was given to resolve it.
	ErrMergeConflict = errors.New("merge conflict: resolve manually or sync with --prefer local/remote")
)

// Credentials carries the optional HTTPS username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Client wraps the git CLI.
type Client struct {
	creds Credentials
}

// New creates a git client. Credentials may be zero when only SSH or
// anonymous transports are in use.
func New(creds Credentials) *Client {
	return &Client{creds: creds}
}

// command builds a git invocation rooted at dir with the synthetic identity
// and credential plumbing applied.
func (c *Client) command(dir string, args ...string) *exec.Cmd {
	base := []string{
		"-c", "user.name=" + AuthorName,
		"-c", "user.email=" + AuthorEmail,
	}
	env := append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	if c.creds.Username != "" {
		// Inline helper reads the pair from the subprocess environment so
		// the password never appears in the argument list.
		base = append(base,
			"-c", `credential.helper=!f() { echo "username=$RUTD_GIT_USERNAME"; echo "password=$RUTD_GIT_PASSWORD"; }; f`,
		)
		env = append(env,
			"RUTD_GIT_USERNAME="+c.creds.Username,
			"RUTD_GIT_PASSWORD="+c.creds.Password,
		)
	}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	cmd.Env = env
	return cmd
}

func commandOutput(cmd *exec.Cmd, context string) ([]byte, error) {
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%s: %w: %s", context, err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	return output, nil
}

func commandOutputString(cmd *exec.Cmd, context string) (string, error) {
	output, err := commandOutput(cmd, context)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

func commandCombinedOutput(cmd *exec.Cmd, context string) ([]byte, error) {
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("%s: %w: %s", context, err, output)
	}
	return output, nil
}

func runCombinedOutput(cmd *exec.Cmd, context string) error {
	if _, err := commandCombinedOutput(cmd, context); err != nil {
		return err
	}
	return nil
}

// OpenOrInit makes sure dir is a git repository, initializing one if needed.
// It never fails for an empty or missing directory.
func (c *Client) OpenOrInit(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create repository directory: %w", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		return nil
	}
	return runCombinedOutput(c.command(dir, "init", "--quiet"), "git init")
}

// Clone clones url into dir. The directory must be missing or empty.
func (c *Client) Clone(dir, url string) error {
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("inspect clone target: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrTargetNotEmpty, dir)
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return fmt.Errorf("create clone parent: %w", err)
	}
	if err := runCombinedOutput(c.command(filepath.Dir(dir), "clone", "--quiet", url, dir), "git clone"); err != nil {
		return fmt.Errorf("%w: %v", ErrCloneFailed, err)
	}
	return nil
}

// CommitAll stages the full working tree and commits it under the synthetic
// identity. A commit is created even when the tree is unchanged.
func (c *Client) CommitAll(dir, message string) error {
	if err := runCombinedOutput(c.command(dir, "add", "--all"), "git add"); err != nil {
		return err
	}
	cmd := c.command(dir, "commit", "--quiet", "--allow-empty", "--no-verify", "--file", "-")
	cmd.Stdin = strings.NewReader(message)
	return runCombinedOutput(cmd, "git commit")
}

// CurrentBranch returns the branch HEAD points at, or "" when HEAD is unborn
// or detached.
func (c *Client) CurrentBranch(dir string) string {
	branch, err := commandOutputString(c.command(dir, "symbolic-ref", "--short", "--quiet", "HEAD"), "git symbolic-ref")
	if err != nil {
		return ""
	}
	return branch
}

// HeadCommit returns the commit id of HEAD, or "" when HEAD is unborn.
func (c *Client) HeadCommit(dir string) string {
	rev, err := c.revParse(dir, "HEAD")
	if err != nil {
		return ""
	}
	return rev
}

func (c *Client) revParse(dir, rev string) (string, error) {
	return commandOutputString(c.command(dir, "rev-parse", "--verify", "--quiet", rev), "git rev-parse")
}

// HeadMessage returns the full commit message of HEAD.
func (c *Client) HeadMessage(dir string) (string, error) {
	return commandOutputString(c.command(dir, "log", "-1", "--format=%B"), "git log")
}

// CommitCount returns the number of commits reachable from HEAD.
// An unborn HEAD counts as zero.
func (c *Client) CommitCount(dir string) (int, error) {
	if c.HeadCommit(dir) == "" {
		return 0, nil
	}
	out, err := commandOutputString(c.command(dir, "rev-list", "--count", "HEAD"), "git rev-list")
	if err != nil {
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(out, "%d", &count); err != nil {
		return 0, fmt.Errorf("parse commit count %q: %w", out, err)
	}
	return count, nil
}

// ParentCount returns the number of parents of HEAD.
func (c *Client) ParentCount(dir string) (int, error) {
	out, err := commandOutputString(c.command(dir, "log", "-1", "--format=%P"), "git log")
	if err != nil {
		return 0, err
	}
	if out == "" {
		return 0, nil
	}
	return len(strings.Fields(out)), nil
}

// Remotes returns the configured remote names.
func (c *Client) Remotes(dir string) ([]string, error) {
	out, err := commandOutputString(c.command(dir, "remote"), "git remote")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Fields(out), nil
}

// AddRemote configures a named remote.
func (c *Client) AddRemote(dir, name, url string) error {
	return runCombinedOutput(c.command(dir, "remote", "add", name, url), "git remote add")
}

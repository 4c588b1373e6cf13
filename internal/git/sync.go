package git

import (
	"fmt"
	"strings"
)

// Preference tells the sync protocol how to resolve three-way merge conflicts.
type Preference int

const (
	// PreferenceNone aborts the merge and asks for manual resolution.
	PreferenceNone Preference = iota

	// PreferenceLocal resolves conflicts in favor of the local side.
	PreferenceLocal

	// PreferenceRemote resolves conflicts in favor of the remote side.
	PreferenceRemote
)

// Preferences returns all valid merge preferences.
func Preferences() []Preference {
	return []Preference{PreferenceNone, PreferenceLocal, PreferenceRemote}
}

var preferenceAliases = map[Preference][]string{
	PreferenceNone:   {"none", "n"},
	PreferenceLocal:  {"local", "l"},
	PreferenceRemote: {"remote", "r"},
}

// String returns the canonical name for the preference.
func (p Preference) String() string {
	if aliases, ok := preferenceAliases[p]; ok {
		return aliases[0]
	}
	return "unknown"
}

// ParsePreference parses a short or long preference alias, case-insensitively.
func ParsePreference(s string) (Preference, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Preferences() {
		for _, alias := range preferenceAliases[p] {
			if alias == needle {
				return p, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid merge preference %q (want none, local, or remote)", s)
}

const syncRemote = "origin"

// Sync reconciles the repository with its remote: fetch, merge or
// fast-forward according to the preference, then push. A repository without
// remotes syncs trivially. A fresh, branchless remote is push-only.
func (c *Client) Sync(dir string, pref Preference) error {
	remotes, err := c.Remotes(dir)
	if err != nil {
		return err
	}
	if len(remotes) == 0 {
		return nil
	}

	for _, branch := range []string{"master", "main"} {
		if err := c.fetchBranch(dir, branch); err != nil {
			return err
		}
	}

	branch := c.CurrentBranch(dir)
	head := c.HeadCommit(dir)

	if branch != "" && head != "" {
		if remoteTip, err := c.revParse(dir, "refs/remotes/"+syncRemote+"/"+branch); err == nil {
			if err := c.integrate(dir, branch, head, remoteTip, pref); err != nil {
				return err
			}
		}
	}

	if head == "" || branch == "" {
		return nil
	}
	return c.push(dir, branch)
}

// fetchBranch fetches a single branch, treating a missing remote ref as a
// fresh remote rather than a failure.
func (c *Client) fetchBranch(dir, branch string) error {
	output, err := commandCombinedOutput(c.command(dir, "fetch", "--quiet", syncRemote, branch), "git fetch")
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(string(output)), "couldn't find remote ref") {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrFetchFailed, err)
}

// integrate brings the remote tip into the local branch: no-op when up to
// date, fast-forward when possible, otherwise a two-parent merge resolved
// per the preference.
func (c *Client) integrate(dir, branch, head, remoteTip string, pref Preference) error {
	if remoteTip == head {
		return nil
	}

	base, err := commandOutputString(c.command(dir, "merge-base", head, remoteTip), "git merge-base")
	if err != nil {
		// Unrelated histories have no merge base; fall through to a merge
		// so a freshly-seeded remote can still be combined.
		base = ""
	}

	switch base {
	case remoteTip:
		// Local is ahead; nothing to integrate.
		return nil
	case head:
		return runCombinedOutput(c.command(dir, "merge", "--quiet", "--ff-only", remoteTip), "git merge --ff-only")
	}

	args := []string{"merge", "--quiet", "--no-ff", "-m", "sync: merge remote changes"}
	switch pref {
	case PreferenceLocal:
		args = append(args, "-X", "ours")
	case PreferenceRemote:
		args = append(args, "-X", "theirs")
	}
	if base == "" {
		args = append(args, "--allow-unrelated-histories")
	}
	args = append(args, remoteTip)

	output, err := commandCombinedOutput(c.command(dir, args...), "git merge")
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToUpper(string(output)), "CONFLICT") ||
		strings.Contains(strings.ToLower(string(output)), "automatic merge failed") {
		_ = runCombinedOutput(c.command(dir, "merge", "--abort"), "git merge --abort")
		return ErrMergeConflict
	}
	return err
}

func (c *Client) push(dir, branch string) error {
	output, err := commandCombinedOutput(c.command(dir, "push", "--quiet", syncRemote, "refs/heads/"+branch), "git push")
	if err == nil {
		return nil
	}
	lowered := strings.ToLower(string(output))
	if strings.Contains(lowered, "non-fast-forward") || strings.Contains(lowered, "fetch first") {
		return ErrPushRejected
	}
	return err
}

// HasConflicts reports whether the index currently has unmerged paths.
func (c *Client) HasConflicts(dir string) (bool, error) {
	out, err := commandOutputString(c.command(dir, "diff", "--name-only", "--diff-filter=U"), "git diff")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

package batch

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/lyxnorm/core/errors"
	"github.com/FocuswithJustin/lyxnorm/internal/archive"
)

// GoldenCheck reports how a transcript compares with a golden digest.
type GoldenCheck struct {
	Golden string
	Actual string

	// RunID and Failed describe the checked transcript.
	RunID  string
	Failed int
}

// Match reports whether the transcript digest equals the golden digest.
func (c *GoldenCheck) Match() bool {
	return c.Golden == c.Actual
}

// verifiedDigest loads a transcript and returns it with its run digest
// after checking the digest against the recorded results.
func verifiedDigest(transcriptPath string) (*Transcript, string, error) {
	t, err := LoadTranscript(transcriptPath)
	if err != nil {
		return nil, "", err
	}
	if err := t.Verify(); err != nil {
		return nil, "", err
	}
	digest, err := t.Digest()
	if err != nil {
		return nil, "", err
	}
	return t, digest, nil
}

// SaveGolden writes the run digest of the transcript to goldenPath and
// returns it.
func SaveGolden(transcriptPath, goldenPath string) (string, error) {
	_, digest, err := verifiedDigest(transcriptPath)
	if err != nil {
		return "", err
	}

	if err := archive.WriteFile(goldenPath, []byte(digest+"\n")); err != nil {
		return "", errors.Wrap(err, "failed to save golden")
	}
	return digest, nil
}

// CheckGolden compares the run digest of the transcript with the digest
// stored in goldenPath.
func CheckGolden(transcriptPath, goldenPath string) (*GoldenCheck, error) {
	t, digest, err := verifiedDigest(transcriptPath)
	if err != nil {
		return nil, err
	}

	data, err := archive.ReadAll(goldenPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read golden")
	}
	golden := strings.TrimSpace(string(data))
	if golden == "" {
		return nil, errors.NewParse("golden", goldenPath, "file is empty")
	}

	check := &GoldenCheck{Golden: golden, Actual: digest, Failed: len(t.Errors())}
	if info := t.RunInfo(); info != nil {
		check.RunID = info.RunID
	}
	return check, nil
}

// String renders the check the way the CLI prints it.
func (c *GoldenCheck) String() string {
	if c.Match() {
		return fmt.Sprintf("PASS: %s", c.Actual)
	}
	return fmt.Sprintf("FAIL: expected %s, got %s", c.Golden, c.Actual)
}

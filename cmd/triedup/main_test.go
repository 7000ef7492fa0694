package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/trie"
)

func runDriver(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(input), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{name: "no repeat", input: "cat\ncar\ndog\n***\n", want: "0\n"},
		{name: "empty input", input: "***\n", want: "0\n"},
		{name: "repeated branch", input: "xabc\nxabd\nyabc\nyabd\n***\n", want: "4 abc#d####\n"},
		{name: "words after sentinel ignored", input: "xab\n***\nyab\n", want: "0\n"},
		{name: "eof without sentinel", input: "xab\nyab", want: "2 ab###\n"},
		{name: "invalid words skipped", input: "xab\n\nx-y\nyab\n***\n", want: "2 ab###\n"},
		{name: "custom sentinel", input: "xab\nEND\nyab\n", args: []string{"--sentinel", "END"}, want: "0\n"},
		{name: "end markers repeat", input: "ab\nb\nabb\nbb\n***\n", want: "3 b@#b###\n"},
		{name: "strict policy", input: "xabc\nxabd\nyabc\nyabd\n***\n", args: []string{"--policy", "strict"}, want: "4 abc#d####\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runDriver(t, tt.input, append(tt.args, "--log-level", "error")...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRun_TracesEncoding(t *testing.T) {
	stdout, stderr, err := runDriver(t, "cat\ncar\n***\n", "--log-format", "json")
	require.NoError(t, err)
	assert.Equal(t, "0\n", stdout)
	assert.Contains(t, stderr, `"encoding":"cat####"`)
	assert.Contains(t, stderr, `"encoding":"car#t####"`)

	_, stderr, err = runDriver(t, "cat\n***\n", "--log-format", "json", "--trace=false")
	require.NoError(t, err)
	assert.NotContains(t, stderr, `"encoding"`)
}

func TestRun_Strict(t *testing.T) {
	_, _, err := runDriver(t, "cat\nc4t\n***\n", "--strict", "--log-level", "error")
	assert.ErrorIs(t, err, trie.ErrInvalidWord)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRun_InputFile(t *testing.T) {
	// "xéb", "yéb", "xab" and "yab" with é as the single byte 0xe9
	content := []byte("x\xe9b\ny\xe9b\nxab\nyab\n***\n")
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, content, 0644))

	tests := []struct {
		charset string
		want    string
	}{
		// 0xe9 is not valid UTF-8, so both é words are skipped
		{charset: "utf-8", want: "2 ab###\n"},
		{charset: "iso-8859-1", want: "4 ab##éb###\n"},
		{charset: "windows-1252", want: "4 ab##éb###\n"},
	}

	for _, tt := range tests {
		t.Run(tt.charset, func(t *testing.T) {
			stdout, stderr, err := runDriver(t, "", "--input", path, "--charset", tt.charset, "--log-format", "json")
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
			if tt.charset == "utf-8" {
				assert.Contains(t, stderr, "skipping word")
			} else {
				assert.NotContains(t, stderr, "skipping word")
				assert.Contains(t, stderr, `"word":"xéb"`)
			}
		})
	}
}

func TestRun_Latin1Word(t *testing.T) {
	stdout, stderr, err := runDriver(t, "caf\xe9\n***\n", "--charset", "iso-8859-1", "--strict", "--log-format", "json")
	require.NoError(t, err)
	assert.Equal(t, "0\n", stdout)
	assert.Contains(t, stderr, `"encoding":"café#####"`)

	_, _, err = runDriver(t, "caf\xe9\n***\n", "--strict", "--log-level", "error")
	assert.ErrorIs(t, err, trie.ErrInvalidWord)
}

func TestRun_BadFlags(t *testing.T) {
	_, _, err := runDriver(t, "", "--policy", "fuzzy")
	assert.Error(t, err)

	_, _, err = runDriver(t, "", "--input", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aidetector/internal/core/detection"
	perr "aidetector/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const essay = "Furthermore, it is important to note that the results demonstrate a significant improvement. " +
	"Moreover, the analysis indicates consistent outcomes across all samples."

func TestRunInlineText(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-backend", "heuristic", "-text", essay}, nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), detection.HeuristicModel) {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunFileAsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay.txt")
	if err := os.WriteFile(path, []byte(essay), 0o600); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-backend", "heuristic", "-json", "-file", path}, nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	var res detection.Result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v (%s)", err, out.String())
	}
	if res.TextLength != len([]rune(essay)) || res.Model != detection.HeuristicModel {
		t.Fatalf("result = %+v", res)
	}
	if res.AIProbability < 0 || res.AIProbability > 100 {
		t.Fatalf("probability out of range: %d", res.AIProbability)
	}
}

func TestRunStdin(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-backend", "heuristic", "-file", "-"}, strings.NewReader(essay), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunMinLengthCountsRawRunes(t *testing.T) {
	// 12 runes with the padding, 6 without
	err := run(context.Background(), []string{"-backend", "heuristic", "-min-length", "10", "-text", "   abcdef   "}, nil, &bytes.Buffer{})
	require.NoError(t, err)

	err = run(context.Background(), []string{"-backend", "heuristic", "-min-length", "10", "-text", "          "}, nil, &bytes.Buffer{})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation), "blank text: %v", err)
}

func TestRunRejects(t *testing.T) {
	cases := map[string][]string{
		"no input":     {"-backend", "heuristic"},
		"both inputs":  {"-backend", "heuristic", "-text", essay, "-file", "x"},
		"bad backend":  {"-backend", "openai", "-text", essay},
		"unknown flag": {"-nope"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if err := run(context.Background(), args, nil, &bytes.Buffer{}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestRunTooShort(t *testing.T) {
	err := run(context.Background(), []string{"-backend", "heuristic", "-text", "short"}, nil, &bytes.Buffer{})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

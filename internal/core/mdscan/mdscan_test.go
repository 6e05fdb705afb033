package mdscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"# Title", 1},
		{"## Section", 2},
		{"### Sub", 3},
		{"  ## indented", 2},
		{"#NoSpace", 0},
		{"####### too deep", 0},
		{"##", 0},
		{"plain text", 0},
		{"", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HeadingLevel(tt.line), tt.line)
	}
}

func TestSection(t *testing.T) {
	lines := SplitLines(`# Log

## Summary

Did the thing.

## What Was Done

- **Alice:** parser
`)

	body, ok := Section(lines, "summary")
	require.True(t, ok)
	assert.Contains(t, body, "Did the thing.")
	assert.NotContains(t, body, "- **Alice:** parser")
}

func TestSection_CaseInsensitiveContains(t *testing.T) {
	lines := SplitLines("## Related Issues\n\n- #3\n")

	body, ok := Section(lines, "related issue")
	require.True(t, ok)
	assert.Contains(t, body, "- #3")
}

func TestSection_Missing(t *testing.T) {
	_, ok := Section(SplitLines("# Title\n\ntext\n"), "summary")
	assert.False(t, ok)
}

func TestTableCells(t *testing.T) {
	assert.Equal(t, []string{"Alice", "Engineer"}, TableCells("| Alice | Engineer |"))
	assert.Nil(t, TableCells("not a row"))
}

func TestIsSeparatorRow(t *testing.T) {
	assert.True(t, IsSeparatorRow(TableCells("|---|-----|")))
	assert.True(t, IsSeparatorRow(TableCells("|:--|--:|")))
	assert.False(t, IsSeparatorRow(TableCells("| Alice | - |")))
}

func TestMetaLine(t *testing.T) {
	tests := []struct {
		line      string
		key, val  string
		wantMatch bool
	}{
		{"**Date:** 2026-03-01", "Date", "2026-03-01", true},
		{"**Participants**: Alice, Bob", "Participants", "Alice, Bob", true},
		{"**Author:**", "Author", "", true},
		{"**Bold** prose continues", "", "", false},
		{"plain line", "", "", false},
	}

	for _, tt := range tests {
		key, val, ok := MetaLine(tt.line)
		assert.Equal(t, tt.wantMatch, ok, tt.line)
		assert.Equal(t, tt.key, key, tt.line)
		assert.Equal(t, tt.val, val, tt.line)
	}
}

func TestSplitLines_CRLF(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, SplitLines("a\r\nb\r\n"))
}

func TestBulletTexts(t *testing.T) {
	lines := []string{"- first", "* second", "not a bullet", "  - indented"}
	assert.Equal(t, []string{"first", "second", "indented"}, BulletTexts(lines))
}

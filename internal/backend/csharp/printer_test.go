package csharp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recast/internal/model"
)

func TestNeedsSpace(t *testing.T) {
	assert.True(t, needsSpace('n', "x"))
	assert.True(t, needsSpace('+', "+a"))
	assert.True(t, needsSpace('-', "-"))
	assert.True(t, needsSpace('/', "/"))
	assert.True(t, needsSpace('!', "=="))
	assert.False(t, needsSpace('(', "x"))
	assert.False(t, needsSpace('x', "."))
	assert.False(t, needsSpace('>', ">"))
	assert.False(t, needsSpace(0, "x"))
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "a", ShortName(0))
	assert.Equal(t, "z", ShortName(25))
	assert.Equal(t, "aa", ShortName(26))
	assert.Equal(t, "ab", ShortName(27))
	assert.Equal(t, "ba", ShortName(52))
}

func TestArrayDimsFollowSourceOrder(t *testing.T) {
	// int[,][] is an array of int[] written with the two-dimensional
	// specifier first
	inner := &model.TypeRef{Form: model.TypeArray, Rank: 2, Elem: &model.TypeRef{Form: model.TypePredefined, Keyword: "int"}}
	outer := &model.TypeRef{Form: model.TypeArray, Rank: 1, Elem: inner}
	elem, ranks := arrayDims(outer)
	assert.Equal(t, "int", elem.Keyword)
	assert.Equal(t, []int{2, 1}, ranks)
}

func TestParseBraceStyle(t *testing.T) {
	b, ok := ParseBraceStyle("KR")
	assert.True(t, ok)
	assert.Equal(t, BraceKR, b)
	_, ok = ParseBraceStyle("gnu")
	assert.False(t, ok)
}

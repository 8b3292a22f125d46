package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/solbuild/internal/core/domain"
)

func TestNewSourceFile_CRLFInsensitive(t *testing.T) {
	lf := domain.NewSourceFile("a.sol", []byte("pragma solidity ^0.8.0;\ncontract A {}\n"))
	crlf := domain.NewSourceFile("a.sol", []byte("pragma solidity ^0.8.0;\r\ncontract A {}\r\n"))

	assert.Equal(t, lf.Hash, crlf.Hash)
	assert.Equal(t, lf.Content, crlf.Content)
}

func TestNormalizeLineEndings_NoAllocOnCleanInput(t *testing.T) {
	raw := []byte("no carriage returns here\n")
	got := domain.NormalizeLineEndings(raw)
	// Same backing slice when nothing needs rewriting.
	assert.Equal(t, &raw[0], &got[0])
}

func TestNewSourceFile_HashDistinguishesContent(t *testing.T) {
	a := domain.NewSourceFile("a.sol", []byte("contract A {}"))
	b := domain.NewSourceFile("a.sol", []byte("contract B {}"))
	assert.NotEqual(t, a.Hash, b.Hash)
}

func TestInternedString_RoundTrip(t *testing.T) {
	s := domain.NewInternedString("contracts/Token.sol")
	assert.Equal(t, "contracts/Token.sol", s.String())

	// Interning makes equal strings comparable as values.
	assert.Equal(t, s, domain.NewInternedString("contracts/Token.sol"))
	assert.NotEqual(t, s, domain.NewInternedString("contracts/token.sol"))
}

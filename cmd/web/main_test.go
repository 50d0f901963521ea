package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpExitsCleanly(t *testing.T) {
	assert.NoError(t, mainE([]string{"--help"}))
}

func TestUnknownFlagFails(t *testing.T) {
	err := mainE([]string{"--no-such-flag"})
	assert.ErrorContains(t, err, "parsing flags")
}

func TestBadConverterFails(t *testing.T) {
	err := mainE([]string{"--converter", "gojianfan"})
	assert.ErrorContains(t, err, "parsing flags")
}

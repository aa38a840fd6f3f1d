package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLanguage(language.AmericanEnglish)

	assert.Equal("unknown opcode 255 at offset 3", From("unknown opcode %d at offset %d", 255, 3))
	assert.Equal("plain", From("plain"))
}

package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	raw := `{"recommendations":[]}`

	assert.Equal(t, raw, stripFences(raw))
	assert.Equal(t, raw, stripFences("```json\n"+raw+"\n```"))
	assert.Equal(t, raw, stripFences("```\n"+raw+"\n```"))
	assert.Equal(t, raw, stripFences("  "+raw+"  \n"))
}

func TestDefaultString(t *testing.T) {
	assert.Equal(t, "supply", defaultString("", "supply"))
	assert.Equal(t, "supply", defaultString("   ", "supply"))
	assert.Equal(t, "demand", defaultString("demand", "supply"))
}

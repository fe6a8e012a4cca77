package powershell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpreter(t *testing.T) {
	cmd := Interpreter()
	require.Len(t, cmd, 4)
	assert.NotEmpty(t, cmd[0])
	assert.Equal(t, []string{`-NoProfile`, `-NonInteractive`, `-File`}, cmd[1:])

	if ps, ok := Lookup(); ok {
		assert.Equal(t, ps, cmd[0])
	} else {
		assert.Equal(t, `pwsh`, cmd[0])
	}
}

package mongoutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerErrorIsBareMessage(t *testing.T) {
	t.Parallel()

	err := &ServerError{Code: 125, Message: "quiesce failed"}
	// hooks surface this verbatim in test failures, so no decoration
	assert.Equal(t, "quiesce failed", err.Error())
}

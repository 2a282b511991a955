package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, MetadataFor(CodeNotFound).HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, MetadataFor(CodeStateConflict).HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(Code("bogus")).HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(CodeDependency, cause, "load order")

	require.NotNil(t, err)
	assert.Equal(t, CodeDependency, err.Code())
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, "DEPENDENCY_ERROR: load order", err.Error())
}

func TestAsFindsTypedError(t *testing.T) {
	inner := New(CodeNotFound, "order not found")
	wrapped := fmt.Errorf("handler: %w", inner)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())

	assert.Nil(t, As(fmt.Errorf("plain")))
	assert.Nil(t, As(nil))
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeInternal, fmt.Errorf("root"), "outer")
	dump := Dump(err)

	assert.Equal(t, CodeInternal, dump.Code)
	require.Len(t, dump.Chain, 2)
	assert.Contains(t, dump.Chain[1], "root")
}

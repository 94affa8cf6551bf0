package loader

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoader_UnsupportedLocalesKeepNoState(t *testing.T) {
	t.Parallel()

	l := New(map[string]Supplier{"en": Static(Dictionary{"k": "v"})}, "en", WithRegistry(nil))
	for i := range 500 {
		l.Get("k", fmt.Sprintf("zz-%d", i))
	}
	require.ErrorIs(t, l.WaitForLocaleLoaded(t.Context(), "zz-0", false), ErrUnsupportedLocale)
	require.NoError(t, l.LastError("zz-1"))

	l.mu.Lock()
	defer l.mu.Unlock()
	require.Len(t, l.state, 1)
	require.Contains(t, l.state, "en")
}

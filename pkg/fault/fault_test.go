package fault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestKindFatal(t *testing.T) {
	fatal := []Kind{KindRemoteCatalog, KindCatalogRead, KindCatalogWrite, KindConflict, KindContract, KindUnknown}
	for _, k := range fatal {
		assert.True(t, k.Fatal(), "%s should be fatal", k)
	}

	perFont := []Kind{KindCheck, KindDownload, KindExtract, KindLinks}
	for _, k := range perFont {
		assert.False(t, k.Fatal(), "%s should not be fatal", k)
	}
}

func TestErrorChain(t *testing.T) {
	base := errors.New("connection refused")
	err := errors.Errorf("syncing: %w", New(KindDownload, "Bravura", base))

	assert.Equal(t, KindDownload, KindOf(err))
	assert.False(t, IsFatal(err))
	assert.True(t, errors.Is(err, base), "underlying error should stay reachable")
	assert.Contains(t, err.Error(), "download [Bravura]: connection refused")
}

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(nil))
	assert.True(t, IsFatal(errors.New("plain")), "errors without a kind are fatal")
	assert.True(t, IsFatal(New(KindConflict, "", errors.New("boom"))))
}

func TestErrorWithoutFont(t *testing.T) {
	err := New(KindRemoteCatalog, "", errors.New("timeout"))
	assert.Equal(t, "remote-catalog: timeout", err.Error())
}

package txxt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txxt-lang/txxt/txxt/internal/fixture"
)

func TestFixtureCasesParse(t *testing.T) {
	cases, err := fixture.Load("testdata/cases")
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			doc, perr := ParseDocument(c.Source)
			if c.ExpectedError == "" {
				require.Nil(t, perr, "case %s should parse cleanly", c.Name)
				assert.NotNil(t, doc)
				return
			}
			require.NotNil(t, perr, "case %s should have failed to parse", c.Name)
			assert.Equal(t, c.ExpectedError, perr.Kind.String())
		})
	}
}

package inspect

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTermsCSV(t *testing.T) {
	res, err := InspectPattern("a?b", InspectOptions{Strict: true})
	assert.NoError(t, err)

	got, err := TermsCSV(res, false)
	assert.NoError(t, err)
	assert.Equal(t, "1,Quantifier,a?,?,0,1\n2,Literal,b,,,\n", string(got))

	withHeader, err := TermsCSV(res, true)
	assert.NoError(t, err)
	assert.Equal(t, "index,kind,text,quantifier,min,max\n"+string(got), string(withHeader))
}

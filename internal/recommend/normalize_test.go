package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dairy", "dairy"},
		{"Dairy", "dairy"},
		{"  Dairy  ", "dairy"},
		{"Nabiał", "nabial"},
		{"Łaciate", "laciate"},
		{"Mlijéko", "mlijeko"},
		{"żółty ser", "zolty ser"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, foldKey(tt.in), "foldKey(%q)", tt.in)
	}
}

func TestFoldSet(t *testing.T) {
	assert.Nil(t, foldSet(nil))

	set := foldSet([]string{"Nabiał", "nabial", "Pieczywo"})
	assert.Len(t, set, 2)
	_, ok := set["nabial"]
	assert.True(t, ok)
	_, ok = set["pieczywo"]
	assert.True(t, ok)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLinkMethod(t *testing.T) {
	tests := []struct {
		input string
		want  LinkMethod
	}{
		{"junction", LinkJunction},
		{"symlink", LinkSymlink},
		{"SymLink", LinkSymlink},
		{"", LinkJunction},
		{"hardlink", LinkJunction},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLinkMethod(tt.input))
		})
	}
}

func TestLinkMethod_RoundTrip(t *testing.T) {
	for _, m := range []LinkMethod{LinkJunction, LinkSymlink} {
		assert.Equal(t, m, ParseLinkMethod(m.String()))
	}
}

func TestIgnoreSet_ContainsIgnoresCase(t *testing.T) {
	set := NewIgnoreSet("Steamworks Shared", "", "DirectX")

	assert.True(t, set.Contains("steamworks shared"))
	assert.True(t, set.Contains("DIRECTX"))
	assert.False(t, set.Contains(""))
	assert.False(t, set.Contains("Skyrim"))
	assert.Len(t, set, 2)
}

func TestIgnoreSet_NilIsEmpty(t *testing.T) {
	var set IgnoreSet
	assert.False(t, set.Contains("anything"))
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "link", DirectionLink.String())
	assert.Equal(t, "unlink", DirectionUnlink.String())
	assert.Equal(t, DirectionUnlink, ParseDirection("unlink"))
	assert.Equal(t, DirectionLink, ParseDirection("link"))
}

func TestAction_RoundTrip(t *testing.T) {
	for _, a := range []Action{ActionNone, ActionMoveAndLink, ActionLinkOnly, ActionUnlinkAndRestore, ActionRestore} {
		assert.Equal(t, a, ParseAction(a.String()))
	}
	assert.Equal(t, ActionNone, ParseAction("bogus"))
}

func TestSortFold(t *testing.T) {
	names := []string{"beta", "Alpha", "alpha", "Gamma"}
	SortFold(names)
	assert.Equal(t, []string{"Alpha", "alpha", "beta", "Gamma"}, names)
}

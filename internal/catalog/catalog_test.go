package catalog_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"glink/internal/catalog"
	"glink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(root, n), 0755))
	}
}

func locations(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "hdd")
	tgt := filepath.Join(dir, "ssd")
	mkdirs(t, dir, "hdd", "ssd")
	return src, tgt
}

func TestFind_SymmetricDifference(t *testing.T) {
	src, tgt := locations(t)
	mkdirs(t, src, "Alpha", "Both", "charlie")
	mkdirs(t, tgt, "both", "Bravo")

	games, err := catalog.Find(catalog.Query{SourceDir: src, TargetDir: tgt})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Bravo", "charlie"}, games)
}

func TestFind_SymmetricDifferenceProperty(t *testing.T) {
	pool := []string{"Doom", "Quake", "Hexen", "Heretic", "Duke", "Blood", "Thief", "Deus Ex"}
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		src, tgt := locations(t)
		want := map[string]bool{}
		for _, name := range pool {
			inSrc, inTgt := rng.Intn(2) == 0, rng.Intn(2) == 0
			if inSrc {
				mkdirs(t, src, name)
			}
			if inTgt {
				// Differently cased names are still the same game.
				mkdirs(t, tgt, strings.ToUpper(name))
			}
			if inSrc != inTgt {
				want[strings.ToLower(name)] = true
			}
		}

		games, err := catalog.Find(catalog.Query{SourceDir: src, TargetDir: tgt})
		if len(want) == 0 {
			assert.ErrorIs(t, err, domain.ErrNoMatch)
			continue
		}
		require.NoError(t, err)

		got := map[string]bool{}
		for _, g := range games {
			got[strings.ToLower(g)] = true
		}
		assert.Equal(t, want, got, "round %d", round)
		assert.True(t, isSortedFold(games), "round %d: %v", round, games)
	}
}

func TestFind_ReverseOnlyTarget(t *testing.T) {
	src, tgt := locations(t)
	mkdirs(t, src, "Alpha", "Both")
	mkdirs(t, tgt, "Both", "Bravo")

	games, err := catalog.Find(catalog.Query{SourceDir: src, TargetDir: tgt, Reverse: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Both", "Bravo"}, games)
}

func TestFind_ExactSkipsScan(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	// Scanning a file would fail; exact mode never looks.
	games, err := catalog.Find(catalog.Query{SourceDir: file, TargetDir: file, Name: "Foo", Exact: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo"}, games)
}

func TestFind_SubstringIgnoresCase(t *testing.T) {
	src, tgt := locations(t)
	mkdirs(t, src, "Fallout 4", "Fallout New Vegas", "Skyrim")

	games, err := catalog.Find(catalog.Query{SourceDir: src, TargetDir: tgt, Name: "FALL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fallout 4", "Fallout New Vegas"}, games)
}

func TestFind_IgnoreSet(t *testing.T) {
	src, tgt := locations(t)
	mkdirs(t, src, "Steamworks Shared", "Portal")
	mkdirs(t, tgt, "DirectX")

	games, err := catalog.Find(catalog.Query{
		SourceDir: src,
		TargetDir: tgt,
		Ignore:    domain.NewIgnoreSet("steamworks shared", "directx"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Portal"}, games)
}

func TestFind_SkipsFiles(t *testing.T) {
	src, tgt := locations(t)
	mkdirs(t, src, "Portal")
	require.NoError(t, os.WriteFile(filepath.Join(src, "Portal 2.txt"), nil, 0644))

	games, err := catalog.Find(catalog.Query{SourceDir: src, TargetDir: tgt, Name: "portal"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Portal"}, games)
}

func TestFind_LinkedGameCountsInBothLocations(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	src, tgt := locations(t)
	mkdirs(t, tgt, "Portal")
	require.NoError(t, os.Symlink(filepath.Join(tgt, "Portal"), filepath.Join(src, "Portal")))

	_, err := catalog.Find(catalog.Query{SourceDir: src, TargetDir: tgt})
	assert.ErrorIs(t, err, domain.ErrNoMatch)

	games, err := catalog.Find(catalog.Query{SourceDir: src, TargetDir: tgt, Reverse: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Portal"}, games)
}

func TestFind_MissingLocation(t *testing.T) {
	src, _ := locations(t)
	mkdirs(t, src, "Portal")

	games, err := catalog.Find(catalog.Query{SourceDir: src, TargetDir: filepath.Join(src, "missing")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Portal"}, games)
}

func TestFind_NoMatch(t *testing.T) {
	src, tgt := locations(t)
	mkdirs(t, src, "Portal")

	_, err := catalog.Find(catalog.Query{SourceDir: src, TargetDir: tgt, Name: "zelda"})
	assert.ErrorIs(t, err, domain.ErrNoMatch)
}

func TestFindAll_LabelsByPlatform(t *testing.T) {
	steamSrc, steamTgt := locations(t)
	gogSrc, gogTgt := locations(t)
	mkdirs(t, steamTgt, "Portal", "Half-Life")
	mkdirs(t, gogTgt, "Witcher")
	mkdirs(t, gogSrc, "Witcher")

	labels, err := catalog.FindAll([]catalog.PlatformQuery{
		{Platform: "steam", Query: catalog.Query{SourceDir: steamSrc, TargetDir: steamTgt, Reverse: true}},
		{Platform: "GOG", Query: catalog.Query{SourceDir: gogSrc, TargetDir: gogTgt, Reverse: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"[GOG] Witcher", "[steam] Half-Life", "[steam] Portal"}, labels)
}

func TestFindAll_NothingAnywhere(t *testing.T) {
	src, tgt := locations(t)

	_, err := catalog.FindAll([]catalog.PlatformQuery{
		{Platform: "steam", Query: catalog.Query{SourceDir: src, TargetDir: tgt, Reverse: true}},
	})
	assert.ErrorIs(t, err, domain.ErrNoMatch)
}

func TestParseLabel(t *testing.T) {
	platform, game, ok := catalog.ParseLabel(catalog.Label("steam", "Deus Ex [GOTY]"))
	require.True(t, ok)
	assert.Equal(t, "steam", platform)
	assert.Equal(t, "Deus Ex [GOTY]", game)

	_, _, ok = catalog.ParseLabel("no brackets")
	assert.False(t, ok)
}

func isSortedFold(names []string) bool {
	for i := 1; i < len(names); i++ {
		if strings.ToLower(names[i-1]) > strings.ToLower(names[i]) {
			return false
		}
	}
	return true
}

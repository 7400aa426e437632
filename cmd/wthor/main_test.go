package main

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/bodgit/wthor/database"
	"github.com/bodgit/wthor/download"
	"github.com/bodgit/wthor/wthor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMove(t *testing.T) {
	assert.Equal(t, "f5", formatMove(56))
	assert.Equal(t, "a1", formatMove(11))
	assert.Equal(t, "h8", formatMove(88))
	assert.Equal(t, "0", formatMove(0))
	assert.Equal(t, "19", formatMove(19))
	assert.Equal(t, "91", formatMove(91))
}

func TestFormatMoves(t *testing.T) {
	assert.Equal(t, "f5 d6 c3", formatMoves([]byte{56, 64, 33}, true))
	assert.Equal(t, "56 64 33", formatMoves([]byte{56, 64, 33}, false))
	assert.Equal(t, "", formatMoves(nil, true))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2005-06-21", formatDate(wthor.Date{Century: 20, Year: 5, Month: 6, Day: 21}))
}

func TestYears(t *testing.T) {
	assert.Equal(t, []int{1977, 1978, 1979, 1980}, years([]int{1978, 1977, 1978}, 1978, 1980))
	assert.Equal(t, []int{2001}, years([]int{2001}, 0, 2023))
	assert.Empty(t, years(nil, 0, 2023))
}

func testServer(t *testing.T, files map[string][]byte) (*download.Downloader, map[string]*int32) {
	t.Helper()

	hits := make(map[string]*int32)
	for name := range files {
		hits[name] = new(int32)
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Base(r.URL.Path)
		b, ok := files[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(hits[name], 1)
		_, _ = w.Write(b)
	}))
	t.Cleanup(ts.Close)

	return download.New(download.WithBaseURL(ts.URL), download.WithHTTPClient(ts.Client())), hits
}

func marshal(t *testing.T, f wthor.File) []byte {
	t.Helper()
	b, err := f.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestSaveFiles(t *testing.T) {
	files := map[string][]byte{
		wthor.JouFileName:       marshal(t, new(wthor.Jou)),
		wthor.TrnFileName:       marshal(t, new(wthor.Trn)),
		wthor.WtbFileName(1977): marshal(t, &wthor.Wtb{Year: 1977, Games: []wthor.Game{{}}}),
	}
	d, hits := testServer(t, files)
	dir := t.TempDir()

	names := []string{wthor.JouFileName, wthor.TrnFileName}
	for _, y := range years([]int{1977}, 1977, 1977) {
		names = append(names, wthor.WtbFileName(y))
	}
	require.NoError(t, saveFiles(context.Background(), d, dir, names))

	for name, b := range files {
		saved, err := ioutil.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, b, saved, name)
		assert.Equal(t, int32(1), atomic.LoadInt32(hits[name]), name)
	}
}

func TestSaveFilesRejectsInvalid(t *testing.T) {
	d, _ := testServer(t, map[string][]byte{
		wthor.WtbFileName(1978): []byte("not a wtb file"),
	})
	dir := t.TempDir()

	err := saveFiles(context.Background(), d, dir, []string{wthor.WtbFileName(1978)})
	assert.ErrorIs(t, err, wthor.ErrInvalidFormat)

	_, err = os.Stat(filepath.Join(dir, wthor.WtbFileName(1978)))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveFilesMissing(t *testing.T) {
	d, _ := testServer(t, nil)

	err := saveFiles(context.Background(), d, t.TempDir(), []string{wthor.WtbFileName(1900)})
	assert.Error(t, err)
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()

	db, err := database.NewDatabase(filepath.Join(dir, "wthor.db"))
	require.NoError(t, err)
	defer db.Close()

	wtb := filepath.Join(dir, wthor.WtbFileName(2001))
	require.NoError(t, ioutil.WriteFile(wtb, marshal(t, &wthor.Wtb{Year: 2001, Games: []wthor.Game{{}, {}}}), 0644))
	require.NoError(t, importFile(db, wtb))

	n, err := db.CountGames(2001)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// 10x10 games are skipped and leave existing games alone
	wtb10 := filepath.Join(t.TempDir(), wthor.WtbFileName(2001))
	require.NoError(t, ioutil.WriteFile(wtb10, marshal(t, &wthor.Wtb10{Year: 2001, Games: []wthor.Game10{{}}}), 0644))
	require.NoError(t, importFile(db, wtb10))

	n, err = db.CountGames(2001)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	bad := filepath.Join(dir, wthor.JouFileName)
	require.NoError(t, ioutil.WriteFile(bad, []byte{1, 2, 3}, 0644))
	assert.ErrorIs(t, importFile(db, bad), wthor.ErrInvalidFormat)
}

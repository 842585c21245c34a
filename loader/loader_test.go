package loader_test

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/friendgraph/core"
	"github.com/katalvlaran/friendgraph/loader"
)

// TestLoad_Scenario covers the four-user input from the format description.
func TestLoad_Scenario(t *testing.T) {
	g, err := loader.Load(strings.NewReader("1\t2,3\n2\t1\n3\t1\n4\t"))
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3, 4}, g.Vertices())
	assert.Equal(t, []core.Edge{{Src: 1, Dst: 2}, {Src: 1, Dst: 3}, {Src: 2, Dst: 1}, {Src: 3, Dst: 1}}, g.Edges())
	assert.Zero(t, g.OutDegree(4), "empty friend field means no edges")
}

// TestParseRecord_Valid checks token handling for well-formed lines.
func TestParseRecord_Valid(t *testing.T) {
	tests := []struct {
		name string
		line string
		want loader.Record
	}{
		{"no friends", "7\t", loader.Record{User: 7}},
		{"one friend", "7\t8", loader.Record{User: 7, Friends: []int64{8}}},
		{"order kept", "7\t9,8,9", loader.Record{User: 7, Friends: []int64{9, 8, 9}}},
		{"spaces trimmed", " 7 \t 8 , 9", loader.Record{User: 7, Friends: []int64{8, 9}}},
		{"crlf", "7\t8\r", loader.Record{User: 7, Friends: []int64{8}}},
		{"self loop", "7\t7", loader.Record{User: 7, Friends: []int64{7}}},
		{"negative id", "-1\t-2", loader.Record{User: -1, Friends: []int64{-2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loader.ParseRecord(1, tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want.User, got.User)
			assert.Equal(t, len(tt.want.Friends), len(got.Friends))
			if len(tt.want.Friends) > 0 {
				assert.Equal(t, tt.want.Friends, got.Friends)
			}
		})
	}
}

// TestParseRecord_Malformed checks every rejection path identifies the line.
func TestParseRecord_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		reason string
	}{
		{"blank", "", "missing tab"},
		{"no tab", "1 2,3", "missing tab"},
		{"bad user", "x\t1", "user"},
		{"empty user", "\t1", "user"},
		{"bad friend", "1\t2,y", "friend #2"},
		{"empty token", "1\t2,,3", "friend #2"},
		{"trailing comma", "1\t2,", "friend #2"},
		{"extra field", "1\t2\t3", "friend #1"},
		{"overflow", "1\t99999999999999999999", "friend #1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.ParseRecord(12, tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, loader.ErrMalformedRecord)

			var re *loader.RecordError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, 12, re.Line)
			assert.Contains(t, re.Reason, tt.reason)
			assert.Contains(t, err.Error(), "line 12")
		})
	}
}

// TestRecordError_TruncatesText keeps error messages bounded.
func TestRecordError_TruncatesText(t *testing.T) {
	_, err := loader.ParseRecord(1, strings.Repeat("9", 500))
	var re *loader.RecordError
	require.True(t, errors.As(err, &re))
	assert.Less(t, len(re.Text), 100)
	assert.True(t, strings.HasSuffix(re.Text, "..."))

	_, err = loader.ParseRecord(2, "x"+strings.Repeat("é", 100))
	require.True(t, errors.As(err, &re))
	assert.True(t, utf8.ValidString(re.Text))
	assert.Equal(t, "x"+strings.Repeat("é", 39)+"...", re.Text)
}

// TestLoad_AbortsOnFirstError verifies the default policy.
func TestLoad_AbortsOnFirstError(t *testing.T) {
	_, err := loader.Load(strings.NewReader("1\t2\nbad\n3\tx\n"))
	require.Error(t, err)

	var re *loader.RecordError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 2, re.Line)
	assert.NotContains(t, err.Error(), "line 3", "later lines are not reported")
}

// TestLoad_CollectErrors verifies every bad line is reported.
func TestLoad_CollectErrors(t *testing.T) {
	_, err := loader.Load(strings.NewReader("1\t2\nbad\n3\t4\n5\tx\n"), loader.WithCollectErrors())
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrMalformedRecord)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "line 4")
	assert.NotContains(t, err.Error(), "line 3")
}

// TestLoad_MaxErrors caps kept errors and counts the rest.
func TestLoad_MaxErrors(t *testing.T) {
	input := strings.Repeat("bad\n", 5)
	_, err := loader.Load(strings.NewReader(input), loader.WithCollectErrors(), loader.WithMaxErrors(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	assert.Contains(t, err.Error(), "line 2")
	assert.NotContains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "3 more not shown")
}

// TestLoad_Options rejects invalid option values.
func TestLoad_Options(t *testing.T) {
	_, err := loader.Load(strings.NewReader(""), loader.WithMaxErrors(0))
	assert.ErrorIs(t, err, loader.ErrOptionViolation)

	_, err = loader.Load(strings.NewReader(""), loader.WithMaxLineBytes(-1))
	assert.ErrorIs(t, err, loader.ErrOptionViolation)
}

// TestLoad_LineTooLong surfaces the scanner limit instead of truncating.
func TestLoad_LineTooLong(t *testing.T) {
	_, err := loader.Load(strings.NewReader("1\t"+strings.Repeat("2,", 100)+"2\n"), loader.WithMaxLineBytes(16))
	require.Error(t, err)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

// TestLoad_Cancelled stops between lines.
func TestLoad_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := loader.Load(strings.NewReader("1\t2\n"), loader.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestLoad_EmptyInput yields an empty graph, left for analyzers to reject.
func TestLoad_EmptyInput(t *testing.T) {
	g, err := loader.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, g.VertexCount())
}

// TestBuild_VertexSetIsUnion checks that vertices are exactly users ∪ friends
// on random records.
func TestBuild_VertexSetIsUnion(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		var records []loader.Record
		want := map[int64]bool{}
		edgeCount := 0
		for u := 0; u < 30; u++ {
			user := int64(r.Intn(200))
			rec := loader.Record{User: user}
			want[user] = true
			for k := r.Intn(5); k > 0; k-- {
				f := int64(r.Intn(400))
				rec.Friends = append(rec.Friends, f)
				want[f] = true
				edgeCount++
			}
			records = append(records, rec)
		}

		g, err := loader.Build(records)
		require.NoError(t, err)

		var wantIDs []int64
		for id := range want {
			wantIDs = append(wantIDs, id)
		}
		slices.Sort(wantIDs)
		assert.Equal(t, wantIDs, g.Vertices())
		assert.Equal(t, edgeCount, g.EdgeCount())
	}
}

// TestWriteRecords_Reload writes records and loads them back.
func TestWriteRecords_Reload(t *testing.T) {
	records := []loader.Record{{User: 1, Friends: []int64{2, 3}}, {User: 4}}
	var buf bytes.Buffer
	require.NoError(t, loader.WriteRecords(&buf, records))
	assert.Equal(t, "1\t2,3\n4\t\n", buf.String())

	g, err := loader.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, g.Vertices())
}

// TestLoadFile reads from disk and names the path in errors.
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("1\t2\n"), 0o644))
	g, err := loader.LoadFile(good)
	require.NoError(t, err)
	assert.Equal(t, 1, g.EdgeCount())

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("oops\n"), 0o644))
	_, err = loader.LoadFile(bad)
	assert.ErrorIs(t, err, loader.ErrMalformedRecord)
	assert.Contains(t, err.Error(), "bad.txt")

	_, err = loader.LoadFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

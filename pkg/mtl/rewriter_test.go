package mtl_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mtlsort/pkg/mtl"
)

const (
	twoMaterials = "newmtl A\nKd 1 0 0\nnewmtl B\nKd 0 1 0\n"
	abaGeometry  = "o cube\nv 0 0 0\nusemtl A\nf 1 2 3\nusemtl B\nf 2 3 4\nusemtl A\nf 3 4 5\n"
)

func TestTransform_DuplicatesInUsageOrder(t *testing.T) {
	t.Parallel()

	var geometry, material bytes.Buffer
	err := mtl.Transform([]byte(abaGeometry), []byte(twoMaterials), &geometry, &material)
	require.NoError(t, err)

	assert.Equal(t,
		"newmtl mat0\nKd 1 0 0\nnewmtl mat1\nKd 0 1 0\nnewmtl mat2\nKd 1 0 0\n",
		material.String())
	assert.Equal(t,
		"o cube\nv 0 0 0\nusemtl mat0\nf 1 2 3\nusemtl mat1\nf 2 3 4\nusemtl mat2\nf 3 4 5\n",
		geometry.String())
}

func TestTransform_UnresolvedUsageWritesNothing(t *testing.T) {
	t.Parallel()

	geometry := "usemtl A\nf 1 2 3\nusemtl Missing\nf 1 2 3\n"

	var geometryOut, materialOut bytes.Buffer
	err := mtl.Transform([]byte(geometry), []byte(twoMaterials), &geometryOut, &materialOut)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mtl.ErrUnresolvedUsage))

	var unresolved *mtl.UnresolvedUsageError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "Missing", unresolved.Name)
	assert.Equal(t, 3, unresolved.Line)

	assert.Zero(t, geometryOut.Len())
	assert.Zero(t, materialOut.Len())
}

func TestRewrite_NameMustEndTheLine(t *testing.T) {
	t.Parallel()

	_, err := mtl.New(mtl.DefaultOptions()).Rewrite(
		[]byte("usemtl A\nf 1 2 3\n"),
		[]byte("newmtl A B\nKd 1 0 0\n"),
	)
	require.ErrorIs(t, err, mtl.ErrUnresolvedUsage)

	out, err := mtl.New(mtl.DefaultOptions()).Rewrite(
		[]byte("usemtl A B\nf 1 2 3\n"),
		[]byte("newmtl A B\nKd 1 0 0\n"),
	)
	require.NoError(t, err)
	assert.Equal(t, "newmtl mat0\nKd 1 0 0\n", string(out.Material))
}

func TestRewrite_Invariants(t *testing.T) {
	t.Parallel()

	material := "# Material Count: 3\n\nnewmtl Red\nKd 1 0 0\nillum 2\n\nnewmtl Green\nKd 0 1 0\n\nnewmtl Blue\nKd 0 0 1\n"
	geometry := "usemtl Blue\nf 1 2 3\nusemtl Red\nf 1 2 3\nusemtl Blue\nf 1 2 3\nusemtl Blue\nf 1 2 3\n"

	out, err := mtl.New(mtl.DefaultOptions()).Rewrite([]byte(geometry), []byte(material))
	require.NoError(t, err)

	decls := mtl.IndexDeclarations(out.Material)
	usages, err := mtl.ScanUsages(out.Geometry, 0)
	require.NoError(t, err)

	// One declaration per usage, in usage order, named by position.
	require.Len(t, decls, 4)
	require.Len(t, usages, 4)
	for idx, usage := range usages {
		assert.Equal(t, "mat"+string(rune('0'+idx)), usage.Name)
		assert.Equal(t, usage.Name, decls[idx].Name(out.Material))
	}

	// Duplicates share the original body byte for byte.
	blue := "\nKd 0 0 1\n"
	assert.Equal(t, blue, string(decls[0].Body(out.Material)))
	assert.Equal(t, blue, string(decls[2].Body(out.Material)))
	assert.Equal(t, blue, string(decls[3].Body(out.Material)))
	assert.Equal(t, "\nKd 1 0 0\nillum 2\n\n", string(decls[1].Body(out.Material)))

	assert.True(t, strings.HasPrefix(string(out.Material), "# Material Count: 3\n\n"))

	assert.Equal(t, 4, out.Plan.Len())
	assert.Equal(t, []int{1, 0, 3}, out.Plan.References())
	assert.Equal(t, 1, out.Plan.Duplicated())
	assert.Equal(t, 1, out.Plan.Unused())
	assert.Equal(t, []string{"Red", "Green", "Blue"}, out.Plan.Names)
	assert.Equal(t, []string{"Green"}, out.Plan.UnusedNames())
	assert.Equal(t, "Blue", out.Plan.Entries[0].SourceName)
	assert.Equal(t, "Red", out.Plan.Entries[1].SourceName)
}

func TestRewrite_IdempotentNaming(t *testing.T) {
	t.Parallel()

	var materials strings.Builder
	var geometry strings.Builder
	for idx := range 12 {
		name := "m" + strings.Repeat("x", idx)
		materials.WriteString("newmtl " + name + "\nKd 0 0 0\nNs " + name + "\n")
	}
	// Reference in reverse order and twice each, to exercise mat1 vs mat10.
	for idx := 11; idx >= 0; idx-- {
		name := "m" + strings.Repeat("x", idx)
		geometry.WriteString("usemtl " + name + "\nf 1 2 3\nusemtl " + name + "\nf 1 2 3\n")
	}

	rewriter := mtl.New(mtl.Options{})
	first, err := rewriter.Rewrite([]byte(geometry.String()), []byte(materials.String()))
	require.NoError(t, err)

	second, err := rewriter.Rewrite(first.Geometry, first.Material)
	require.NoError(t, err)

	assert.Equal(t, string(first.Geometry), string(second.Geometry))
	assert.Equal(t, string(first.Material), string(second.Material))
	assert.Equal(t, first.Plan.Len(), second.Plan.Len())
	for idx, entry := range second.Plan.Entries {
		assert.Equal(t, idx, entry.Declaration)
	}
}

func TestRewrite_LineEndings(t *testing.T) {
	t.Parallel()

	t.Run("usage lines end in LF, other CRLF lines pass through", func(t *testing.T) {
		t.Parallel()

		out, err := mtl.New(mtl.Options{}).Rewrite(
			[]byte("usemtl B\r\nf 1 2 3\r\n\r\nusemtl A"),
			[]byte("newmtl A\r\nKd 1 0 0\r\nnewmtl B\r\nKd 0 1 0\r\n"),
		)
		require.NoError(t, err)

		assert.Equal(t, "usemtl mat0\nf 1 2 3\r\n\r\nusemtl mat1\n", string(out.Geometry))
		assert.Equal(t, "newmtl mat0\r\nKd 0 1 0\r\nnewmtl mat1\r\nKd 1 0 0\r\n", string(out.Material))
	})

	t.Run("lone CR after a usage becomes LF", func(t *testing.T) {
		t.Parallel()

		out, err := mtl.New(mtl.Options{}).Rewrite(
			[]byte("usemtl A\rf 1 2 3\r"),
			[]byte("newmtl A\r\nKd 1 0 0\r\n"),
		)
		require.NoError(t, err)

		assert.Equal(t, "usemtl mat0\nf 1 2 3\r", string(out.Geometry))
	})

	t.Run("unterminated last declaration stays on its own lines", func(t *testing.T) {
		t.Parallel()

		out, err := mtl.New(mtl.Options{}).Rewrite(
			[]byte("usemtl B\nusemtl A\n"),
			[]byte("newmtl A\nKd 1 0 0\nnewmtl B\nKd 0 1 0"),
		)
		require.NoError(t, err)

		assert.Equal(t, "newmtl mat0\nKd 0 1 0\nnewmtl mat1\nKd 1 0 0\n", string(out.Material))
	})
}

func TestRewrite_CommentPolicy(t *testing.T) {
	t.Parallel()

	geometry := "# exported\n# usemtl B\nusemtl A\nf 1 2 3\n"

	tests := []struct {
		name   string
		policy mtl.CommentPolicy
		want   string
	}{
		{"keep copies comments", mtl.CommentsKeep, "# exported\n# usemtl B\nusemtl mat0\nf 1 2 3\n"},
		{"strip drops comments", mtl.CommentsStrip, "usemtl mat0\nf 1 2 3\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			out, err := mtl.New(mtl.Options{Comments: testCase.policy}).Rewrite([]byte(geometry), []byte(twoMaterials))
			require.NoError(t, err)
			assert.Equal(t, testCase.want, string(out.Geometry))
			assert.Equal(t, 1, out.Plan.Len())
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	opts := mtl.New(mtl.Options{NamePrefix: "m_"}).Options()
	assert.Equal(t, "m_", opts.NamePrefix)
	assert.Equal(t, mtl.CommentsKeep, opts.Comments)
	assert.Equal(t, mtl.DefaultMaxNameLength, opts.MaxNameLength)

	assert.True(t, mtl.CommentsStrip.IsValid())
	assert.False(t, mtl.CommentPolicy("drop").IsValid())
}

func TestRewrite_CustomPrefix(t *testing.T) {
	t.Parallel()

	out, err := mtl.New(mtl.Options{NamePrefix: "surface_"}).Rewrite([]byte(abaGeometry), []byte(twoMaterials))
	require.NoError(t, err)
	assert.Contains(t, string(out.Geometry), "usemtl surface_2\n")
	assert.Contains(t, string(out.Material), "newmtl surface_1\nKd 0 1 0\n")
}

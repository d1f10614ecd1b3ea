package resultset_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/raywall/dynamo-result-toolkit/resultset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	rs := resultset.New([]resultset.Row{
		{"a": float64(1), "b": float64(2)},
		{"a": float64(3)},
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, rs.WriteCSV(&buf, resultset.WithLeftColumnOrder("a")))

	assert.Equal(t, "a,b\n1,2\n3,\n", buf.String())
}

func TestWriteCSVColumnOrdering(t *testing.T) {
	t.Parallel()

	rs := resultset.New([]resultset.Row{
		{"id": "u1", "name": "Ada", "age": float64(36), "team": "math"},
	}, nil)

	t.Run("left then sorted remaining then right", func(t *testing.T) {
		var buf bytes.Buffer
		err := rs.WriteCSV(&buf,
			resultset.WithLeftColumnOrder("id"),
			resultset.WithRightColumnOrder("team"),
		)
		require.NoError(t, err)
		assert.Equal(t, "id,age,name,team\nu1,36,Ada,math\n", buf.String())
	})

	t.Run("right list wins deduplication", func(t *testing.T) {
		var buf bytes.Buffer
		err := rs.WriteCSV(&buf,
			resultset.WithLeftColumnOrder("id"),
			resultset.WithRightColumnOrder("id", "team"),
		)
		require.NoError(t, err)
		// "id" citado nas duas listas sai uma única vez, na posição da direita
		assert.Equal(t, "age,name,id,team\n36,Ada,u1,math\n", buf.String())
	})

	t.Run("no ordering yields alphabetical header", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, rs.WriteCSV(&buf))
		assert.Equal(t, "age,id,name,team\n36,u1,Ada,math\n", buf.String())
	})
}

func TestWriteCSVQuotesEmbeddedSeparators(t *testing.T) {
	t.Parallel()

	rs := resultset.New([]resultset.Row{
		{"name": "Lovelace, Ada", "note": "first"},
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, rs.WriteCSV(&buf))
	assert.Equal(t, "name,note\n\"Lovelace, Ada\",first\n", buf.String())
}

func TestToCSV(t *testing.T) {
	t.Parallel()

	rs := resultset.New([]resultset.Row{
		{"a": float64(1), "b": float64(2)},
		{"a": float64(3)},
	}, nil)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, rs.ToCSV(path, resultset.WithLeftColumnOrder("a")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n3,\n", string(data))
}

func TestToCSVPropagatesDeferredError(t *testing.T) {
	t.Parallel()

	bad := resultset.New([]resultset.Row{{"a": float64(1)}}, nil).Strip()
	path := filepath.Join(t.TempDir(), "out.csv")

	err := bad.ToCSV(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, resultset.ErrUsage)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nenhum arquivo é criado quando a cadeia carrega erro")
}

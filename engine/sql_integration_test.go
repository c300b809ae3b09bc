package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/vecdex/vector"
)

func TestSQL_Scenarios(t *testing.T) {
	db := openDB(t)

	var blob []byte
	require.NoError(t, db.QueryRow(`SELECT vector(1, 2, 3)`).Scan(&blob))
	assert.Equal(t, vector.Encode([]float32{1, 2, 3}), blob)

	var fromJSON []byte
	require.NoError(t, db.QueryRow(`SELECT vector_from_json('[1, 2, 3]')`).Scan(&fromJSON))
	assert.Equal(t, blob, fromJSON)

	var again []byte
	require.NoError(t, db.QueryRow(`SELECT vector(?)`, blob).Scan(&again))
	assert.Equal(t, blob, again)

	var text string
	require.NoError(t, db.QueryRow(`SELECT vector_to_json(vector(1, 2, 3))`).Scan(&text))
	assert.Equal(t, "[1,2,3]", text)

	var dim int
	require.NoError(t, db.QueryRow(`SELECT vector_dim(vector0(5))`).Scan(&dim))
	assert.Equal(t, 5, dim)

	var score float64
	require.NoError(t, db.QueryRow(`SELECT vector_cosim(vector(1, 0), vector(0, 1))`).Scan(&score))
	assert.Equal(t, 0.0, score)

	require.NoError(t, db.QueryRow(`SELECT vector_dist(vector(0, 0), vector(3, 4))`).Scan(&score))
	assert.Equal(t, 5.0, score)

	require.NoError(t, db.QueryRow(`SELECT vector_norm(vector(3, 4))`).Scan(&score))
	assert.Equal(t, 5.0, score)

	require.NoError(t, db.QueryRow(`SELECT vector_avg(vector(1, 2, 3))`).Scan(&score))
	assert.Equal(t, 2.0, score)

	var cmp int
	require.NoError(t, db.QueryRow(`SELECT vector_compare(vector(1, 2), vector(1, 3))`).Scan(&cmp))
	assert.Equal(t, -1, cmp)

	require.NoError(t, db.QueryRow(`SELECT vector_to_json(vector_div(vector(1, 4), vector(2, 8)))`).Scan(&text))
	assert.Equal(t, "[0.5,0.5]", text)

	require.NoError(t, db.QueryRow(`SELECT vector_to_json(vector_sub(vector_add(vector(1.5, 2), vector(3, 4)), vector(3, 4)))`).Scan(&text))
	assert.Equal(t, "[1.5,2]", text)
}

func TestSQL_NullResults(t *testing.T) {
	db := openDB(t)

	for _, q := range []string{
		`SELECT vector('not json')`,
		`SELECT vector(NULL)`,
		`SELECT vector(1, 'x')`,
		`SELECT vector(x'010203')`,
		`SELECT vector_add('[1,2]', '[1,2,3]')`,
		`SELECT vector_add(vector_from_json('[1,2]'), vector_from_json('[1,2,3]'))`,
		`SELECT vector_cosim(vector(1, 2), vector(1, 2, 3))`,
		`SELECT vector_dist(vector(1), x'00')`,
		`SELECT vector_compare(vector(1), NULL)`,
		`SELECT vector_dim('[1,2,3]')`,
		`SELECT vector_norm(x'0102')`,
		`SELECT vector_to_json(42)`,
		`SELECT vector_cosim(vector(0, 0), vector(1, 1))`,
	} {
		t.Run(q, func(t *testing.T) {
			var got any
			require.NoError(t, db.QueryRow(q).Scan(&got))
			assert.Nil(t, got)
		})
	}
}

func TestSQL_StoredVectors(t *testing.T) {
	db := openDB(t)

	_, err := db.Exec(`CREATE TABLE items(id INTEGER PRIMARY KEY, embedding BLOB)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO items(id, embedding) VALUES
		(1, vector_from_json('[1, 0]')),
		(2, vector_from_json('[0.7, 0.7]')),
		(3, vector_from_json('[0, 1]'))`)
	require.NoError(t, err)

	rows, err := db.Query(`SELECT id, vector_cosim(embedding, vector(1, 0)) AS score FROM items ORDER BY score DESC`)
	require.NoError(t, err)
	defer rows.Close()

	var ids []int
	var scores []float64
	for rows.Next() {
		var id int
		var score float64
		require.NoError(t, rows.Scan(&id, &score))
		ids = append(ids, id)
		scores = append(scores, score)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int{1, 2, 3}, ids)
	assert.InDelta(t, 1/math.Sqrt2, scores[1], 1e-6)
}

func TestSQL_Vector0Truncates(t *testing.T) {
	db := openDB(t)

	var dim int
	require.NoError(t, db.QueryRow(`SELECT vector_dim(vector0(4294967297))`).Scan(&dim))
	assert.Equal(t, 1, dim)

	require.NoError(t, db.QueryRow(`SELECT vector_dim(vector0('4294967298'))`).Scan(&dim))
	assert.Equal(t, 2, dim)
}

func TestSQL_TooBigCodeInMessage(t *testing.T) {
	db := openDB(t)

	var blob []byte
	err := db.QueryRow(`SELECT vector0(300000000)`).Scan(&blob)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vector0:")
	assert.Contains(t, err.Error(), "(18)")
}

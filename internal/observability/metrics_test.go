package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryVerb(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "select", queryVerb(`SELECT * FROM "profiles" WHERE email = $1`))
	assert.Equal(t, "insert", queryVerb(`INSERT INTO "sessions" (id) VALUES ($1)`))
	assert.Equal(t, "update", queryVerb(`update session_participants set participant = $1`))
	assert.Equal(t, "delete", queryVerb(`DELETE FROM "profile_participations"`))
	assert.Equal(t, "create", queryVerb(`CREATE TABLE migration_logs (...)`))
	assert.Equal(t, "other", queryVerb(`EXPLAIN ANALYZE SELECT 1`))
	assert.Equal(t, "other", queryVerb(""))
	assert.Equal(t, "other", queryVerb("   "))
}

//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countContacts(t *testing.T) int {
	t.Helper()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM contact_messages`).Scan(&count))
	return count
}

func TestContactFlow(t *testing.T) {
	require.NoError(t, resetTables(db))

	const body = `{"name":"Ann","email":"ann@x.com","message":"hi"}`

	t.Run("valid submission is stored", func(t *testing.T) {
		code, parsed := postJSON(t, "/api/contact", body)

		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, true, parsed["success"])
		assert.Equal(t, 1, countContacts(t))
	})

	t.Run("identical submission is stored again", func(t *testing.T) {
		code, parsed := postJSON(t, "/api/contact", body)

		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, true, parsed["success"])
		assert.Equal(t, 2, countContacts(t))
	})

	t.Run("missing field stores nothing", func(t *testing.T) {
		code, parsed := postJSON(t, "/api/contact", `{"name":"Ann","message":"hi"}`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, false, parsed["success"])
		assert.Equal(t, 2, countContacts(t))
	})
}

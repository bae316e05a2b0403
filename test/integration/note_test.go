package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteBody struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (app *TestApp) doJSON(t *testing.T, method, url, token string, payload map[string]any) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) listNotes(t *testing.T, token string) []noteBody {
	t.Helper()

	resp := app.doJSON(t, "GET", app.Server.URL+"/notes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var notes []noteBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&notes))
	resp.Body.Close()
	return notes
}

// TestNoteFlow tests the basic lifecycle: Create -> List -> Archive -> List excludes.
func TestNoteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	userID, token := app.createUserAndToken(t)

	// Step 1: Create a note
	resp := app.doJSON(t, "POST", app.Server.URL+"/notes", token, map[string]any{
		"title":   "T",
		"content": "C",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created noteBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, "T", created.Title)
	assert.Equal(t, "C", created.Content)
	assert.Equal(t, userID.String(), created.OwnerID)
	assert.False(t, created.Archived)

	// Step 2: List includes it
	notes := app.listNotes(t, token)
	require.Len(t, notes, 1)
	assert.Equal(t, created.ID, notes[0].ID)

	// Step 3: Archive via PATCH
	resp = app.doJSON(t, "PATCH", app.Server.URL+"/notes/"+created.ID, token, map[string]any{
		"archived": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var archived noteBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&archived))
	resp.Body.Close()
	assert.True(t, archived.Archived)

	// Step 4: List excludes it
	notes = app.listNotes(t, token)
	assert.Empty(t, notes)
}

func TestNoteEdit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := app.createUserAndToken(t)

	resp := app.doJSON(t, "POST", app.Server.URL+"/notes", token, map[string]any{
		"title":   "Before",
		"content": "Old content",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created noteBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	resp = app.doJSON(t, "PATCH", app.Server.URL+"/notes/"+created.ID, token, map[string]any{
		"title":   "After",
		"content": "New content",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var edited noteBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&edited))
	resp.Body.Close()

	assert.Equal(t, "After", edited.Title)
	assert.Equal(t, "New content", edited.Content)
	assert.False(t, edited.Archived)
	assert.True(t, edited.UpdatedAt.After(created.UpdatedAt))
}

func TestNotePatchValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := app.createUserAndToken(t)

	resp := app.doJSON(t, "POST", app.Server.URL+"/notes", token, map[string]any{
		"title":   "T",
		"content": "C",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created noteBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	// Empty body carries nothing to update
	resp = app.doJSON(t, "PATCH", app.Server.URL+"/notes/"+created.ID, token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Mixing the archive and edit forms is ambiguous
	resp = app.doJSON(t, "PATCH", app.Server.URL+"/notes/"+created.ID, token, map[string]any{
		"archived": true,
		"title":    "X",
		"content":  "Y",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Title without content is not a valid edit
	resp = app.doJSON(t, "PATCH", app.Server.URL+"/notes/"+created.ID, token, map[string]any{
		"title": "X",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestNoteListOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := app.createUserAndToken(t)

	for _, title := range []string{"first", "second", "third"} {
		resp := app.doJSON(t, "POST", app.Server.URL+"/notes", token, map[string]any{
			"title":   title,
			"content": "c",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
		time.Sleep(5 * time.Millisecond)
	}

	notes := app.listNotes(t, token)
	require.Len(t, notes, 3)
	assert.Equal(t, "third", notes[0].Title)
	assert.Equal(t, "second", notes[1].Title)
	assert.Equal(t, "first", notes[2].Title)
}

// TestNoteOwnershipIsolation checks that one user can neither see nor mutate
// another user's notes.
func TestNoteOwnershipIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, tokenA := app.createUserAndToken(t)
	_, tokenB := app.createUserAndToken(t)

	resp := app.doJSON(t, "POST", app.Server.URL+"/notes", tokenA, map[string]any{
		"title":   "A's note",
		"content": "private",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var aNote noteBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&aNote))
	resp.Body.Close()

	// B's listing never includes A's note
	assert.Empty(t, app.listNotes(t, tokenB))

	// B cannot edit A's note
	resp = app.doJSON(t, "PATCH", app.Server.URL+"/notes/"+aNote.ID, tokenB, map[string]any{
		"title":   "hijacked",
		"content": "hijacked",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// B cannot archive A's note
	resp = app.doJSON(t, "PATCH", app.Server.URL+"/notes/"+aNote.ID, tokenB, map[string]any{
		"archived": true,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// A's note is untouched
	notes := app.listNotes(t, tokenA)
	require.Len(t, notes, 1)
	assert.Equal(t, "A's note", notes[0].Title)
	assert.False(t, notes[0].Archived)
}

func TestNoteNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := app.createUserAndToken(t)

	resp := app.doJSON(t, "PATCH", app.Server.URL+"/notes/"+uuid.NewString(), token, map[string]any{
		"archived": true,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestNotesUnauthorized(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, err := app.Client.Get(app.Server.URL + "/notes")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

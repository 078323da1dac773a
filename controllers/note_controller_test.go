package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteRespWrap struct {
	Note noteView `json:"note"`
}

type noteListResp struct {
	Items []noteView `json:"items"`
	Total int64      `json:"total"`
}

func TestCreateNoteSanitizesAndDedupesTags(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	w := doJSON(t, r, http.MethodPost, "/notes", map[string]interface{}{
		"title":   "Calculus <script>alert(1)</script>",
		"content": "Derivatives<script>alert(1)</script> are rates of change",
		"tags":    []string{"math", " math ", "", "calculus"},
	})
	var resp noteRespWrap
	decodeData(t, w, &resp)

	assert.NotContains(t, resp.Note.Title, "<script>")
	assert.NotContains(t, resp.Note.Content, "<script>")
	assert.Contains(t, resp.Note.Content, "Derivatives")
	assert.Equal(t, []string{"math", "calculus"}, resp.Note.Tags)
}

func TestNoteSearchAndTagFilter(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	notes := []map[string]interface{}{
		{"title": "Integrals", "content": "area under curves", "tags": []string{"math"}},
		{"title": "Optics", "content": "light and lenses", "tags": []string{"physics"}},
		{"title": "Matrices", "content": "linear maps", "tags": []string{"math", "algebra"}},
	}
	for _, n := range notes {
		decodeData(t, doJSON(t, r, http.MethodPost, "/notes", n), nil)
	}

	var resp noteListResp
	decodeData(t, doJSON(t, r, http.MethodGet, "/notes?q=curves", nil), &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Integrals", resp.Items[0].Title)

	decodeData(t, doJSON(t, r, http.MethodGet, "/notes?tag=math", nil), &resp)
	assert.Len(t, resp.Items, 2)
	assert.EqualValues(t, 2, resp.Total)

	decodeData(t, doJSON(t, r, http.MethodGet, "/notes", nil), &resp)
	assert.Len(t, resp.Items, 3)
}

func TestUpdateNotePartialFields(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	var created noteRespWrap
	decodeData(t, doJSON(t, r, http.MethodPost, "/notes", map[string]interface{}{
		"title": "Draft", "content": "first pass", "tags": []string{"wip"},
	}), &created)

	var resp noteRespWrap
	decodeData(t, doJSON(t, r, http.MethodPut, "/notes/1", map[string]interface{}{
		"content": "second pass",
	}), &resp)
	assert.Equal(t, "Draft", resp.Note.Title)
	assert.Equal(t, "second pass", resp.Note.Content)
	assert.Equal(t, []string{"wip"}, resp.Note.Tags)

	// Blank title is rejected.
	w := doJSON(t, r, http.MethodPut, "/notes/1", map[string]interface{}{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteNote(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	decodeData(t, doJSON(t, r, http.MethodPost, "/notes", map[string]interface{}{
		"title": "Gone soon",
	}), nil)

	w := doJSON(t, r, http.MethodDelete, "/notes/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/notes/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

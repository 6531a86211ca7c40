package services

import (
	"testing"
	"time"

	"legal_cms_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes(t *testing.T) {
	db := setupTestDB(t)
	priya := mustUser(t, db, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	court := mustUser(t, db, "Court Admin", "court@example.com", models.RoleCourt)
	public := mustUser(t, db, "Meena Devi", "meena@example.com", models.RolePublic)
	c := mustCase(t, db, &models.Case{CaseNumber: "CS/2025/0001", Title: "Property Dispute", Petitioner: "A", Respondent: "B", AdvocateID: &priya.ID})
	second := mustCase(t, db, &models.Case{CaseNumber: "CS/2025/0002", Title: "Recovery", Petitioner: "A", Respondent: "B", AdvocateID: &priya.ID})

	first, err := CreateNote(db, priya, c.ID, `Deed verified <img src=x onerror="alert(1)">`)
	require.NoError(t, err)
	assert.NotContains(t, first.Content, "onerror")
	assert.Contains(t, first.Content, "Deed verified")

	time.Sleep(10 * time.Millisecond)
	latest, err := CreateNote(db, priya, second.ID, "Call the bank manager")
	require.NoError(t, err)

	t.Run("Validation", func(t *testing.T) {
		_, err := CreateNote(db, priya, c.ID, "<script></script>")
		assert.EqualError(t, err, "caseId and content are required")

		_, err = CreateNote(db, public, c.ID, "snooping")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ListPrivateAndOrdered", func(t *testing.T) {
		notes, err := ListNotes(db, priya, 0)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, latest.ID, notes[0].ID)

		notes, err = ListNotes(db, priya, c.ID)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, first.ID, notes[0].ID)

		notes, err = ListNotes(db, court, 0)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("UpdateMovesToTop", func(t *testing.T) {
		time.Sleep(10 * time.Millisecond)
		content := "Deed verified by registrar"
		updated, err := UpdateNote(db, priya, first.ID, &content)
		require.NoError(t, err)
		assert.Equal(t, content, updated.Content)

		notes, err := ListNotes(db, priya, 0)
		require.NoError(t, err)
		assert.Equal(t, first.ID, notes[0].ID)

		empty := "<b></b>"
		_, err = UpdateNote(db, priya, first.ID, &empty)
		assert.EqualError(t, err, "Content cannot be empty")

		_, err = UpdateNote(db, court, first.ID, &content)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.ErrorIs(t, DeleteNote(db, court, latest.ID), ErrNotFound)
		require.NoError(t, DeleteNote(db, priya, latest.ID))
		assert.ErrorIs(t, DeleteNote(db, priya, latest.ID), ErrNotFound)
	})
}

func TestNoteKeepsPlainText(t *testing.T) {
	db := setupTestDB(t)
	priya := mustUser(t, db, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	c := mustCase(t, db, &models.Case{CaseNumber: "CS/2025/0001", Title: "Property Dispute", Petitioner: "A", Respondent: "B", AdvocateID: &priya.ID})

	text := `Client's Q&A "x" 5 < 6`
	note, err := CreateNote(db, priya, c.ID, text)
	require.NoError(t, err)
	assert.Equal(t, text, note.Content)

	revised := `Bring O'Brien's <i>affidavit</i> & receipts`
	note, err = UpdateNote(db, priya, note.ID, &revised)
	require.NoError(t, err)
	assert.Equal(t, "Bring O'Brien's affidavit & receipts", note.Content)

	var stored models.CaseNote
	require.NoError(t, db.First(&stored, note.ID).Error)
	assert.Equal(t, "Bring O'Brien's affidavit & receipts", stored.Content)
}

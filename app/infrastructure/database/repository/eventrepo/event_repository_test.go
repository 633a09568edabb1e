package eventrepo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"larpmanager.app/larp-gateway/app/infrastructure/database"
	"larpmanager.app/larp-gateway/app/infrastructure/database/dbschema"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)
	for _, model := range database.SchemaRegistry {
		require.NoError(t, db.AutoMigrate(model))
	}
	return db
}

func seedEvents(t *testing.T, db *gorm.DB) {
	t.Helper()
	events := []dbschema.Event{
		{BaseModel: dbschema.BaseModel{ID: 10}, AssocID: 7, Slug: "winter-larp", Name: "Winter Larp"},
		{BaseModel: dbschema.BaseModel{ID: 11}, AssocID: 7, Slug: "winter-larp-2", Name: "Winter Larp II", ParentID: 10},
		{BaseModel: dbschema.BaseModel{ID: 20}, AssocID: 8, Slug: "winter-larp", Name: "Another Winter"},
	}
	require.NoError(t, db.Create(&events).Error)

	buttons := []dbschema.EventButton{
		{EventID: 10, Name: "Rules", Link: "https://example.org/rules", Number: 2},
		{EventID: 10, Name: "Signup", Link: "https://example.org/signup", Number: 1},
	}
	require.NoError(t, db.Create(&buttons).Error)

	texts := []dbschema.EventText{
		{EventID: 10, Typ: "intro", Language: "it", Text: "Benvenuti"},
		{EventID: 10, Typ: "intro", Language: "en", Default: true, Text: "Welcome"},
	}
	require.NoError(t, db.Create(&texts).Error)
}

func TestFindBySlugScopedToAssociation(t *testing.T) {
	db := newTestDB(t)
	seedEvents(t, db)
	repo := NewEventGormRepository(db)

	ev, err := repo.FindBySlug(context.Background(), 8, "winter-larp")
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, uint(20), ev.ID)

	missing, err := repo.FindBySlug(context.Background(), 9, "winter-larp")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListChildren(t *testing.T) {
	db := newTestDB(t)
	seedEvents(t, db)
	repo := NewEventGormRepository(db)

	children, err := repo.ListChildren(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, uint(11), children[0].ID)
}

func TestListButtonsOrderedByNumber(t *testing.T) {
	db := newTestDB(t)
	seedEvents(t, db)
	repo := NewEventGormRepository(db)

	buttons, err := repo.ListButtons(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, buttons, 2)
	assert.Equal(t, "Signup", buttons[0].Name)
	assert.Equal(t, "Rules", buttons[1].Name)
}

func TestFindDefaultText(t *testing.T) {
	db := newTestDB(t)
	seedEvents(t, db)
	repo := NewEventGormRepository(db)

	text, err := repo.FindText(context.Background(), 10, "intro", "it")
	require.NoError(t, err)
	require.NotNil(t, text)
	assert.Equal(t, "Benvenuti", text.Text)

	fallback, err := repo.FindDefaultText(context.Background(), 10, "intro")
	require.NoError(t, err)
	require.NotNil(t, fallback)
	assert.Equal(t, "Welcome", fallback.Text)
	assert.True(t, fallback.Default)
}

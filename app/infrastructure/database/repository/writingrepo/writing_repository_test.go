package writingrepo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"larpmanager.app/larp-gateway/app/domain/writing"
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

func seedWritings(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []dbschema.Writing{
		{BaseModel: dbschema.BaseModel{ID: 1}, EventID: 10, Kind: "character", Name: "Aldric", Text: "A wandering knight."},
		{BaseModel: dbschema.BaseModel{ID: 2}, EventID: 10, Kind: "character", Name: "Brianna", Text: "A court alchemist."},
		{BaseModel: dbschema.BaseModel{ID: 100}, EventID: 10, Kind: "faction", Name: "Guild"},
		{BaseModel: dbschema.BaseModel{ID: 200}, EventID: 10, Kind: "plot", Name: "The Heist"},
		{BaseModel: dbschema.BaseModel{ID: 300}, EventID: 99, Kind: "faction", Name: "Other Event"},
	}
	require.NoError(t, db.Create(&rows).Error)

	relations := []dbschema.WritingRelation{
		{EventID: 10, ElementID: 100, CharacterID: 1},
		{EventID: 10, ElementID: 100, CharacterID: 2},
		{EventID: 10, ElementID: 200, CharacterID: 1},
	}
	require.NoError(t, db.Create(&relations).Error)
}

func TestCharacterRelations(t *testing.T) {
	db := newTestDB(t)
	seedWritings(t, db)
	repo := NewWritingGormRepository(db)
	ctx := context.Background()

	all, err := repo.CharacterRelations(ctx, 10, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	byID := make(map[uint]writing.CharacterRelations, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	assert.Equal(t, []writing.Ref{{ID: 100, Name: "Guild"}}, byID[1].Factions)
	assert.Equal(t, []writing.Ref{{ID: 200, Name: "The Heist"}}, byID[1].Plots)
	assert.Equal(t, []writing.Ref{{ID: 100, Name: "Guild"}}, byID[2].Factions)
	assert.Empty(t, byID[2].Plots)
}

func TestCharacterRelationsByIDs(t *testing.T) {
	db := newTestDB(t)
	seedWritings(t, db)
	repo := NewWritingGormRepository(db)

	only, err := repo.CharacterRelations(context.Background(), 10, []uint{2})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, uint(2), only[0].ID)

	missing, err := repo.CharacterRelations(context.Background(), 10, []uint{999})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestElementRelations(t *testing.T) {
	db := newTestDB(t)
	seedWritings(t, db)
	repo := NewWritingGormRepository(db)

	factions, err := repo.ElementRelations(context.Background(), 10, writing.KindFaction, nil)
	require.NoError(t, err)
	require.Len(t, factions, 1)
	assert.Equal(t, "Guild", factions[0].Name)
	assert.ElementsMatch(t, []writing.Ref{
		{ID: 1, Name: "Aldric"},
		{ID: 2, Name: "Brianna"},
	}, factions[0].Characters)

	// Elements of another event must not leak in.
	otherEvent, err := repo.ElementRelations(context.Background(), 10, writing.KindSpeedLarp, nil)
	require.NoError(t, err)
	assert.Empty(t, otherEvent)
}

func TestFieldTexts(t *testing.T) {
	db := newTestDB(t)
	seedWritings(t, db)
	repo := NewWritingGormRepository(db)

	texts, err := repo.FieldTexts(context.Background(), 10, writing.KindCharacter)
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{
		1: "A wandering knight.",
		2: "A court alchemist.",
	}, texts)
}

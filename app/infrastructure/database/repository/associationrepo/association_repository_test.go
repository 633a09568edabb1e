package associationrepo

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

func seedAssociations(t *testing.T, db *gorm.DB) {
	t.Helper()
	assocs := []dbschema.Association{
		{BaseModel: dbschema.BaseModel{ID: 7}, Slug: "dragons", Name: "Dragons LARP", Skin: "dark"},
		{BaseModel: dbschema.BaseModel{ID: 8}, Slug: "ravens", Name: "Ravens LARP"},
	}
	require.NoError(t, db.Create(&assocs).Error)

	configs := []dbschema.AssociationConfig{
		{AssocID: 7, Name: "currency", Value: "EUR"},
		{AssocID: 7, Name: "timezone", Value: "Europe/Rome"},
	}
	require.NoError(t, db.Create(&configs).Error)

	texts := []dbschema.AssociationText{
		{AssocID: 7, Typ: "signup_mail", Language: "en", Default: true, Text: "Thanks for signing up"},
		{AssocID: 7, Typ: "signup_mail", Language: "it", Text: "Grazie per l'iscrizione"},
	}
	require.NoError(t, db.Create(&texts).Error)
}

func TestFindBySlug(t *testing.T) {
	db := newTestDB(t)
	seedAssociations(t, db)
	repo := NewAssociationGormRepository(db)

	assoc, err := repo.FindBySlug(context.Background(), "dragons")
	require.NoError(t, err)
	require.NotNil(t, assoc)
	assert.Equal(t, uint(7), assoc.ID)
	assert.Equal(t, "dark", assoc.Skin)

	missing, err := repo.FindBySlug(context.Background(), "ghosts")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListConfigs(t *testing.T) {
	db := newTestDB(t)
	seedAssociations(t, db)
	repo := NewAssociationGormRepository(db)

	configs, err := repo.ListConfigs(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, configs, 2)

	values := make(map[string]string, len(configs))
	for _, c := range configs {
		values[c.Name] = c.Value
	}
	assert.Equal(t, "EUR", values["currency"])
	assert.Equal(t, "Europe/Rome", values["timezone"])
}

func TestFindTextAndDefaultFallback(t *testing.T) {
	db := newTestDB(t)
	seedAssociations(t, db)
	repo := NewAssociationGormRepository(db)

	text, err := repo.FindText(context.Background(), 7, "signup_mail", "it")
	require.NoError(t, err)
	require.NotNil(t, text)
	assert.Equal(t, "Grazie per l'iscrizione", text.Text)

	none, err := repo.FindText(context.Background(), 7, "signup_mail", "de")
	require.NoError(t, err)
	assert.Nil(t, none)

	fallback, err := repo.FindDefaultText(context.Background(), 7, "signup_mail")
	require.NoError(t, err)
	require.NotNil(t, fallback)
	assert.Equal(t, "Thanks for signing up", fallback.Text)
}

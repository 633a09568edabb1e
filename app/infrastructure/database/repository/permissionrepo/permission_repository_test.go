package permissionrepo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"larpmanager.app/larp-gateway/app/domain/permission"
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

func seedPermissions(t *testing.T, db *gorm.DB) {
	t.Helper()
	features := []dbschema.Feature{
		{BaseModel: dbschema.BaseModel{ID: 1}, Slug: "character", Name: "Characters"},
		{BaseModel: dbschema.BaseModel{ID: 2}, Slug: "membership", Name: "Membership", Overall: true},
	}
	require.NoError(t, db.Create(&features).Error)

	permissions := []dbschema.Permission{
		{BaseModel: dbschema.BaseModel{ID: 1}, Slug: "characters", Name: "Characters", Scope: "event", FeatureID: 1, Number: 2},
		{BaseModel: dbschema.BaseModel{ID: 2}, Slug: "registrations", Name: "Registrations", Scope: "event", FeatureID: 1, Number: 1},
		{BaseModel: dbschema.BaseModel{ID: 3}, Slug: "membership", Name: "Membership", Scope: "assoc", FeatureID: 2, Number: 1},
	}
	require.NoError(t, db.Create(&permissions).Error)
}

func TestListByScopeOrderedWithFeatureSlug(t *testing.T) {
	db := newTestDB(t)
	seedPermissions(t, db)
	repo := NewPermissionGormRepository(db)

	perms, err := repo.ListByScope(context.Background(), permission.ScopeEvent)
	require.NoError(t, err)
	require.Len(t, perms, 2)
	assert.Equal(t, "registrations", perms[0].Slug)
	assert.Equal(t, "characters", perms[1].Slug)
	assert.Equal(t, "character", perms[1].FeatureSlug)
}

func TestFindByIDs(t *testing.T) {
	db := newTestDB(t)
	seedPermissions(t, db)
	repo := NewPermissionGormRepository(db)

	perms, err := repo.FindByIDs(context.Background(), []uint{3, 999})
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, "membership", perms[0].Slug)
	assert.Equal(t, permission.ScopeAssoc, perms[0].Scope)

	empty, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

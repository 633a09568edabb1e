package permissionrepo

import (
	"context"

	domain "larpmanager.app/larp-gateway/app/domain/permission"
	"larpmanager.app/larp-gateway/app/infrastructure/database/dbschema"

	"gorm.io/gorm"
)

// permissionRow carries the joined feature slug alongside the permission
// columns.
type permissionRow struct {
	dbschema.Permission
	FeatureSlug string
}

type PermissionGormRepository struct {
	db *gorm.DB
}

func NewPermissionGormRepository(db *gorm.DB) domain.Repository {
	return &PermissionGormRepository{db: db}
}

func (r *PermissionGormRepository) ListByScope(ctx context.Context, scope domain.Scope) ([]*domain.Permission, error) {
	var rows []permissionRow
	err := r.db.WithContext(ctx).
		Model(&dbschema.Permission{}).
		Select("permission.*, feature.slug AS feature_slug").
		Joins("JOIN feature ON feature.id = permission.feature_id").
		Where("permission.scope = ?", string(scope)).
		Order("permission.number asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toPermissions(rows), nil
}

func (r *PermissionGormRepository) FindByIDs(ctx context.Context, ids []uint) ([]*domain.Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []permissionRow
	err := r.db.WithContext(ctx).
		Model(&dbschema.Permission{}).
		Select("permission.*, feature.slug AS feature_slug").
		Joins("JOIN feature ON feature.id = permission.feature_id").
		Where("permission.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toPermissions(rows), nil
}

func toPermissions(rows []permissionRow) []*domain.Permission {
	permissions := make([]*domain.Permission, 0, len(rows))
	for i := range rows {
		permissions = append(permissions, rows[i].Permission.EtoD(rows[i].FeatureSlug))
	}
	return permissions
}

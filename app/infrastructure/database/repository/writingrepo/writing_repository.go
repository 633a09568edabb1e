package writingrepo

import (
	"context"

	domain "larpmanager.app/larp-gateway/app/domain/writing"
	"larpmanager.app/larp-gateway/app/infrastructure/database/dbschema"

	"gorm.io/gorm"
)

type WritingGormRepository struct {
	db *gorm.DB
}

func NewWritingGormRepository(db *gorm.DB) domain.Repository {
	return &WritingGormRepository{db: db}
}

// relationRow is one resolved m2m row: the element and character ends with
// their names and the element's kind.
type relationRow struct {
	ElementID     uint
	ElementName   string
	ElementKind   string
	CharacterID   uint
	CharacterName string
}

func (r *WritingGormRepository) CharacterRelations(ctx context.Context, eventID uint, ids []uint) ([]domain.CharacterRelations, error) {
	query := r.db.WithContext(ctx).
		Where("event_id = ? AND kind = ?", eventID, string(domain.KindCharacter))
	if ids != nil {
		query = query.Where("id IN ?", ids)
	}
	var characters []dbschema.Writing
	if err := query.Find(&characters).Error; err != nil {
		return nil, err
	}
	if len(characters) == 0 {
		return nil, nil
	}

	characterIDs := make([]uint, 0, len(characters))
	for i := range characters {
		characterIDs = append(characterIDs, characters[i].ID)
	}
	rows, err := r.relationRows(ctx, eventID, "wr.character_id IN ?", characterIDs)
	if err != nil {
		return nil, err
	}

	byCharacter := make(map[uint][]relationRow, len(characters))
	for _, row := range rows {
		byCharacter[row.CharacterID] = append(byCharacter[row.CharacterID], row)
	}

	out := make([]domain.CharacterRelations, 0, len(characters))
	for i := range characters {
		c := domain.CharacterRelations{
			ID:   characters[i].ID,
			Name: characters[i].Name,
		}
		for _, row := range byCharacter[c.ID] {
			ref := domain.Ref{ID: row.ElementID, Name: row.ElementName}
			switch domain.Kind(row.ElementKind) {
			case domain.KindFaction:
				c.Factions = append(c.Factions, ref)
			case domain.KindPlot:
				c.Plots = append(c.Plots, ref)
			case domain.KindSpeedLarp:
				c.SpeedLarps = append(c.SpeedLarps, ref)
			case domain.KindPrologue:
				c.Prologues = append(c.Prologues, ref)
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *WritingGormRepository) ElementRelations(ctx context.Context, eventID uint, kind domain.Kind, ids []uint) ([]domain.ElementRelations, error) {
	query := r.db.WithContext(ctx).
		Where("event_id = ? AND kind = ?", eventID, string(kind))
	if ids != nil {
		query = query.Where("id IN ?", ids)
	}
	var elements []dbschema.Writing
	if err := query.Find(&elements).Error; err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, nil
	}

	elementIDs := make([]uint, 0, len(elements))
	for i := range elements {
		elementIDs = append(elementIDs, elements[i].ID)
	}
	rows, err := r.relationRows(ctx, eventID, "wr.element_id IN ?", elementIDs)
	if err != nil {
		return nil, err
	}

	byElement := make(map[uint][]domain.Ref, len(elements))
	for _, row := range rows {
		byElement[row.ElementID] = append(byElement[row.ElementID], domain.Ref{
			ID:   row.CharacterID,
			Name: row.CharacterName,
		})
	}

	out := make([]domain.ElementRelations, 0, len(elements))
	for i := range elements {
		out = append(out, domain.ElementRelations{
			ID:         elements[i].ID,
			Name:       elements[i].Name,
			Characters: byElement[elements[i].ID],
		})
	}
	return out, nil
}

func (r *WritingGormRepository) FieldTexts(ctx context.Context, eventID uint, kind domain.Kind) (map[uint]string, error) {
	var models []dbschema.Writing
	err := r.db.WithContext(ctx).
		Select("id, text").
		Where("event_id = ? AND kind = ?", eventID, string(kind)).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	texts := make(map[uint]string, len(models))
	for i := range models {
		texts[models[i].ID] = models[i].Text
	}
	return texts, nil
}

func (r *WritingGormRepository) relationRows(ctx context.Context, eventID uint, filter string, ids []uint) ([]relationRow, error) {
	var rows []relationRow
	err := r.db.WithContext(ctx).
		Table("writing_relation AS wr").
		Select(`wr.element_id, el.name AS element_name, el.kind AS element_kind,
			wr.character_id, ch.name AS character_name`).
		Joins("JOIN writing el ON el.id = wr.element_id").
		Joins("JOIN writing ch ON ch.id = wr.character_id").
		Where("wr.event_id = ?", eventID).
		Where(filter, ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

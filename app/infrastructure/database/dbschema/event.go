package dbschema

import (
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Event{}, EventText{}, EventButton{})
}

type Event struct {
	BaseModel
	AssocID  uint   `gorm:"index:idx_event_slug,unique"`
	Slug     string `gorm:"index:idx_event_slug,unique"`
	Name     string
	ParentID uint          `gorm:"index"`
	Texts    []EventText   `gorm:"foreignKey:EventID"`
	Buttons  []EventButton `gorm:"foreignKey:EventID"`
}

type EventText struct {
	BaseModel
	EventID  uint   `gorm:"index"`
	Typ      string `gorm:"index"`
	Language string
	Default  bool
	Text     string
}

type EventButton struct {
	BaseModel
	EventID uint `gorm:"index"`
	Name    string
	Link    string
	Tooltip string
	Number  int
}

func NewSchemaEvent(e *event.Event) *Event {
	return &Event{
		BaseModel: BaseModel{
			ID: e.ID,
		},
		AssocID:  e.AssocID,
		Slug:     e.Slug,
		Name:     e.Name,
		ParentID: e.ParentID,
	}
}

func (e *Event) EtoD() *event.Event {
	return &event.Event{
		ID:        e.ID,
		AssocID:   e.AssocID,
		Slug:      e.Slug,
		Name:      e.Name,
		ParentID:  e.ParentID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (t *EventText) EtoD() *event.Text {
	return &event.Text{
		ID:       t.ID,
		EventID:  t.EventID,
		Typ:      t.Typ,
		Language: t.Language,
		Default:  t.Default,
		Text:     t.Text,
	}
}

func (b *EventButton) EtoD() *event.Button {
	return &event.Button{
		ID:      b.ID,
		EventID: b.EventID,
		Name:    b.Name,
		Link:    b.Link,
		Tooltip: b.Tooltip,
		Number:  b.Number,
	}
}

package dbschema

import (
	"time"

	"larpmanager.app/larp-gateway/app/domain/run"
	"larpmanager.app/larp-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Run{})
}

type Run struct {
	BaseModel
	EventID uint `gorm:"index:idx_run_number,unique"`
	Number  int  `gorm:"index:idx_run_number,unique"`
	Start   time.Time
	End     time.Time
}

func NewSchemaRun(r *run.Run) *Run {
	return &Run{
		BaseModel: BaseModel{
			ID: r.ID,
		},
		EventID: r.EventID,
		Number:  r.Number,
		Start:   r.Start,
		End:     r.End,
	}
}

func (r *Run) EtoD() *run.Run {
	return &run.Run{
		ID:      r.ID,
		EventID: r.EventID,
		Number:  r.Number,
		Start:   r.Start,
		End:     r.End,
	}
}

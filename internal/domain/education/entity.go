package education

import (
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// BASE ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// BaseEntity - общие атрибуты идентичности и аудита для всех сущностей.
type BaseEntity struct {
	// ID - уникальный идентификатор (UUID в строковом формате).
	// Назначается при создании и никогда не меняется.
	ID string

	// CreatedDate - момент создания записи. Update его не перезаписывает.
	CreatedDate time.Time
}

// HasID возвращает true, если идентификатор назначен.
func (b BaseEntity) HasID() bool {
	return strings.TrimSpace(b.ID) != ""
}

// Stamp назначает идентификатор и дату создания новой сущности.
// Уже назначенный ID не перезаписывается.
func (b *BaseEntity) Stamp(id string, now time.Time) {
	if b.HasID() {
		return
	}
	b.ID = id
	b.CreatedDate = now.UTC()
}

// trending — кэш популярности статей по geohash-бакетам.
//
// Состояние намеренно эфемерно: бакет живёт, пока его трогают. И запись, и
// успешное чтение сдвигают дедлайн бакета на полный TTL (скользящее окно),
// поэтому активно запрашиваемые бакеты не остывают, а забытые — умирают
// целиком вместе со всеми счётчиками.
//
// Монопольный владелец состояния — реализация Store; никакой другой слой
// не мутирует счётчики напрямую.
package trending

import (
	"context"

	"github.com/google/uuid"
)

// Store — контракт кэша трендов.
//
// Реализации: MemoryStore (шардированная in-process карта) и RedisStore
// (ZSET на бакет). Выбор — через конфиг сервиса.
type Store interface {
	// Increment атомарно добавляет delta к счёту статьи в бакете, создавая
	// бакет/запись при отсутствии, и сдвигает TTL бакета на полное окно.
	// Конкурентные инкременты одного бакета не теряются.
	Increment(ctx context.Context, bucket string, articleID uuid.UUID, delta float64) error
	// TopK возвращает до k идентификаторов статей бакета по убыванию счёта;
	// тай-брейк — порядок первого появления в бакете. Отсутствующий или
	// протухший бакет — пустой срез, не ошибка. Успешное чтение сдвигает TTL.
	TopK(ctx context.Context, bucket string, k int) ([]uuid.UUID, error)
	// Clear немедленно удаляет бакет (операционный/тестовый сценарий).
	Clear(ctx context.Context, bucket string) error
	// Size — число различных статей в бакете; TTL не трогает.
	Size(ctx context.Context, bucket string) (int, error)
	// Close освобождает ресурсы реализации.
	Close() error
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-trending/internal/models"
	"github.com/stretchr/testify/require"
)

// Файл unit-тестов для сервисного слоя (events.go).
//
// Покрываем ключевую бизнес-логику:
//  - валидация типа события и координат до публикации;
//  - отклонение событий по несуществующей статье;
//  - простановка серверного времени при нулевом timestamp;
//  - прокидка ошибок хранилища и шины.

// TestRecordEvent_OK — валидное событие публикуется как есть.
func TestRecordEvent_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSvcForTest(t, ctrl)

	event := models.InteractionEvent{
		ArticleID: uuid.New(),
		Type:      models.EventShare,
		Timestamp: time.Now().UTC().Add(-time.Minute),
		Latitude:  55.75,
		Longitude: 37.61,
	}

	m.storage.EXPECT().
		ExistsByID(gomock.Any(), event.ArticleID).
		Return(true, nil)
	m.publisher.EXPECT().
		Publish(gomock.Any(), event).
		Return(nil)

	require.NoError(t, svc.RecordEvent(context.Background(), event))
}

// TestRecordEvent_ZeroTimestamp_Stamped — нулевой timestamp заменяется
// серверным временем до публикации.
func TestRecordEvent_ZeroTimestamp_Stamped(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSvcForTest(t, ctrl)

	event := models.InteractionEvent{
		ArticleID: uuid.New(),
		Type:      models.EventView,
		Latitude:  55.75,
		Longitude: 37.61,
	}

	m.storage.EXPECT().
		ExistsByID(gomock.Any(), event.ArticleID).
		Return(true, nil)
	m.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got models.InteractionEvent) error {
			require.False(t, got.Timestamp.IsZero())
			require.WithinDuration(t, time.Now().UTC(), got.Timestamp, 5*time.Second)
			return nil
		})

	require.NoError(t, svc.RecordEvent(context.Background(), event))
}

// TestRecordEvent_BadType — неизвестный тип события отклоняется.
func TestRecordEvent_BadType(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newSvcForTest(t, ctrl)

	err := svc.RecordEvent(context.Background(), models.InteractionEvent{
		ArticleID: uuid.New(),
		Type:      models.EventType("LIKE"),
		Latitude:  55.75,
		Longitude: 37.61,
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestRecordEvent_BadCoordinates — координаты вне диапазона отклоняются.
func TestRecordEvent_BadCoordinates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newSvcForTest(t, ctrl)

	err := svc.RecordEvent(context.Background(), models.InteractionEvent{
		ArticleID: uuid.New(),
		Type:      models.EventClick,
		Latitude:  95,
		Longitude: 0,
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestRecordEvent_UnknownArticle — событие по чужому идентификатору
// отклоняется без публикации.
func TestRecordEvent_UnknownArticle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSvcForTest(t, ctrl)

	m.storage.EXPECT().
		ExistsByID(gomock.Any(), gomock.Any()).
		Return(false, nil)

	err := svc.RecordEvent(context.Background(), models.InteractionEvent{
		ArticleID: uuid.New(),
		Type:      models.EventClick,
		Latitude:  55.75,
		Longitude: 37.61,
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestRecordEvent_PublishError — ошибка шины прокидывается наверх.
func TestRecordEvent_PublishError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSvcForTest(t, ctrl)

	wantErr := errors.New("nats: connection closed")

	m.storage.EXPECT().
		ExistsByID(gomock.Any(), gomock.Any()).
		Return(true, nil)
	m.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Return(wantErr)

	err := svc.RecordEvent(context.Background(), models.InteractionEvent{
		ArticleID: uuid.New(),
		Type:      models.EventShare,
		Timestamp: time.Now().UTC(),
		Latitude:  55.75,
		Longitude: 37.61,
	})
	require.ErrorIs(t, err, wantErr)
}
